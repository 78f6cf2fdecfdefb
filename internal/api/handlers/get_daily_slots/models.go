package get_daily_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getDailySlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_daily_slots"
)

// DailySlotsResponse HTTP response model
type DailySlotsResponse struct {
	ShopID    int64               `json:"shopId"`
	Date      string              `json:"date"`
	Timelines []TherapistTimeline `json:"timelines"`
}

// TherapistTimeline таймлайн одного мастера
type TherapistTimeline struct {
	TherapistID  int64  `json:"therapistId"`
	Slots        []Slot `json:"slots"`
	NextOpenSlot *Slot  `json:"nextOpenSlot,omitempty"`
}

// Slot один слот таймлайна
type Slot struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	Status  string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDailySlots.Response) *DailySlotsResponse {
	timelines := make([]TherapistTimeline, 0, len(resp.Timelines))
	for _, t := range resp.Timelines {
		timeline := TherapistTimeline{
			TherapistID: t.TherapistID,
			Slots:       make([]Slot, 0, len(t.Slots)),
		}
		for _, s := range t.Slots {
			timeline.Slots = append(timeline.Slots, toSlot(s))
		}
		if t.NextOpenSlot != nil {
			next := toSlot(*t.NextOpenSlot)
			timeline.NextOpenSlot = &next
		}
		timelines = append(timelines, timeline)
	}

	return &DailySlotsResponse{
		ShopID:    resp.ShopID,
		Date:      resp.Date.Format(domain.DateFormat),
		Timelines: timelines,
	}
}

func toSlot(s getDailySlots.Slot) Slot {
	return Slot{
		StartAt: s.StartAt.Format(time.RFC3339),
		EndAt:   s.EndAt.Format(time.RFC3339),
		Status:  s.Status,
	}
}
