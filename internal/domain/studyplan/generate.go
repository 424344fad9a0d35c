package studyplan

// Slot sets per time-of-day preference.
var (
	MorningSlots = []string{"06:00-08:00", "08:00-10:00", "10:00-12:00"}
	EveningSlots = []string{"14:00-16:00", "16:00-18:00"}
	NightSlots   = []string{"19:00-21:00", "21:00-23:00"}
)

// Weekdays label generated days in order, wrapping after Sunday.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Fixed labels used in generated entries.
const (
	SessionDuration = "2 hours"
	BreakDuration   = "15 minutes"
	BreakLabel      = "15 minutes break"
	PracticePrefix  = "Practice Test - "
)

// EntryKind distinguishes study sessions from breaks.
type EntryKind string

const (
	EntrySession EntryKind = "session"
	EntryBreak   EntryKind = "break"
)

// Entry is one line of a day schedule.
type Entry struct {
	Kind     EntryKind
	Slot     string // empty for breaks
	Topic    string
	Duration string
}

// IsBreak returns true for break entries.
func (e Entry) IsBreak() bool {
	return e.Kind == EntryBreak
}

// Day is the schedule for one day of the plan.
type Day struct {
	Number  int
	Weekday string
	Entries []Entry
}

// Sessions returns only the study sessions of the day.
func (d Day) Sessions() []Entry {
	var out []Entry
	for _, e := range d.Entries {
		if e.Kind == EntrySession {
			out = append(out, e)
		}
	}
	return out
}

// Schedule is the generated plan.
type Schedule struct {
	Subject        string
	Topics         []string
	Slots          []string
	SessionsPerDay int
	Days           []Day
}

// AvailableSlots returns the slots for the selected time-of-day preferences,
// in morning, evening, night order. No selection means morning.
func AvailableSlots(req Request) []string {
	var slots []string
	if req.Has(PrefMorning) {
		slots = append(slots, MorningSlots...)
	}
	if req.Has(PrefEvening) {
		slots = append(slots, EveningSlots...)
	}
	if req.Has(PrefNight) {
		slots = append(slots, NightSlots...)
	}
	if len(slots) == 0 {
		slots = append(slots, MorningSlots...)
	}
	return slots
}

// Generate builds a deterministic schedule for req.DurationDays days.
// Topics rotate round-robin across sessions and carry over between days.
// With PrefPractice the first session of each day is a practice test on the
// current topic and does not advance the rotation. With PrefBreaks a break
// entry follows every session.
// PRE: none
// POST: len(Days) == DurationDays on success
// INVARIANT: pure function; same input yields the same schedule
func Generate(req Request) (Schedule, error) {
	if err := req.Validate(); err != nil {
		return Schedule{}, err
	}

	topics := ParseTopics(req.Topics)
	slots := AvailableSlots(req)
	perDay := min(req.HoursPerDay, len(slots))
	practice := req.Has(PrefPractice)
	breaks := req.Has(PrefBreaks)

	sched := Schedule{
		Subject:        req.Subject,
		Topics:         topics,
		Slots:          slots[:perDay],
		SessionsPerDay: perDay,
		Days:           make([]Day, 0, req.DurationDays),
	}

	next := 0
	for d := 0; d < req.DurationDays; d++ {
		day := Day{Number: d + 1, Weekday: Weekdays[d%len(Weekdays)]}
		for i, slot := range slots[:perDay] {
			var topic string
			if practice && i == 0 {
				topic = PracticePrefix + topics[next]
			} else {
				topic = topics[next]
				next = (next + 1) % len(topics)
			}
			day.Entries = append(day.Entries, Entry{
				Kind:     EntrySession,
				Slot:     slot,
				Topic:    topic,
				Duration: SessionDuration,
			})
			if breaks {
				day.Entries = append(day.Entries, Entry{
					Kind:     EntryBreak,
					Topic:    BreakLabel,
					Duration: BreakDuration,
				})
			}
		}
		sched.Days = append(sched.Days, day)
	}
	return sched, nil
}
