package request

import (
	"time"

	"stayhub/internal/usecase/commands"
)

type CalendarDayRequest struct {
	Date             string  `json:"date" binding:"required,datetime=2006-01-02"`
	IsAvailable      bool    `json:"is_available"`
	IsBlocked        bool    `json:"is_blocked"`
	BlockReason      *string `json:"block_reason,omitempty" binding:"omitempty,blockreason"`
	CustomPriceCents *int64  `json:"custom_price_cents,omitempty" binding:"omitempty,min=0"`
	MinimumNights    *int32  `json:"minimum_nights,omitempty" binding:"omitempty,min=1,max=90"`
}

type CalendarUpsertRequest struct {
	Days []CalendarDayRequest `json:"days" binding:"required,min=1,max=366,dive"`
}

func (r CalendarUpsertRequest) ToEdits() ([]commands.DayEdit, error) {
	edits := make([]commands.DayEdit, 0, len(r.Days))
	for _, d := range r.Days {
		date, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			return nil, err
		}
		edits = append(edits, commands.DayEdit{
			Date:             date,
			IsAvailable:      d.IsAvailable,
			IsBlocked:        d.IsBlocked,
			BlockReason:      d.BlockReason,
			CustomPriceCents: d.CustomPriceCents,
			MinimumNights:    d.MinimumNights,
		})
	}
	return edits, nil
}

type CalendarRemoveRequest struct {
	Dates []string `json:"dates" binding:"required,min=1,max=366,dive,datetime=2006-01-02"`
}

func (r CalendarRemoveRequest) ToDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, s := range r.Dates {
		date, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, nil
}
