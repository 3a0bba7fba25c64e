package domain

import "time"

// CandidateSlot - часовое окно внутри рабочего дня, кандидат для записи
type CandidateSlot struct {
	StartTime time.Time `json:"begin"`
	EndTime   time.Time `json:"end"`
}

// OfferedSlotSet - список свободных слотов, последний раз показанный пользователю.
// Живет до тех пор, пока не будет использован ответом или заменен новым запросом
type OfferedSlotSet struct {
	Day       time.Time       `json:"day"`
	Slots     []CandidateSlot `json:"slots"`
	OfferedAt time.Time       `json:"offeredAt"`
}

// MatchTime находит предложенный слот, начинающийся в указанные часы и минуты
func (o *OfferedSlotSet) MatchTime(hour, minute int) (CandidateSlot, bool) {
	if o == nil {
		return CandidateSlot{}, false
	}
	for _, slot := range o.Slots {
		if slot.StartTime.Hour() == hour && slot.StartTime.Minute() == minute {
			return slot, true
		}
	}
	return CandidateSlot{}, false
}
