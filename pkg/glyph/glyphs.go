package glyph

// Glyph describes one symbol in the legend: moods that tag whole entries and
// markers that prefix rendered content blocks.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Mood    bool
}

// Mood is the glyph stored on an entry, serialized as the symbol itself so the
// wire format matches what the store hands back.
type Mood string

const (
	Happy   Mood = "😊"
	Neutral Mood = "😐"
	Sad     Mood = "😔"
	Angry   Mood = "😡"
	Excited Mood = "🤩"
	Tired   Mood = "😴"
)

// DefaultMood tags entries when the user never touches the selector.
const DefaultMood = Happy

// Moods returns the selectable moods in display order.
func Moods() []Mood {
	return []Mood{Happy, Neutral, Sad, Angry, Excited, Tired}
}

func (m Mood) Valid() bool {
	for _, known := range Moods() {
		if m == known {
			return true
		}
	}
	return false
}

func (m Mood) String() string {
	return string(m)
}

func (m Mood) Glyph() Glyph {
	for _, g := range DefaultGlyphs() {
		if g.Mood && g.Symbol == string(m) {
			return g
		}
	}
	return Glyph{Symbol: string(m), Meaning: "mood", Mood: true}
}

// DefaultGlyphs lists the full legend: element markers first, moods after.
func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 11)

	g = append(g, Glyph{
		Key:     "text",
		Symbol:  "📝",
		Meaning: "free-form text",
	}, Glyph{
		Key:     "checklist",
		Symbol:  "✅",
		Meaning: "checklist",
	}, Glyph{
		Key:     "highlight",
		Symbol:  "⭐",
		Meaning: "highlight",
	}, Glyph{
		Key:     "problem",
		Symbol:  "⚠️",
		Meaning: "problem, optionally with a solution",
	}, Glyph{
		Key:     "achievement",
		Symbol:  "🏆",
		Meaning: "achievement",
	}, Glyph{
		Key:     "happy",
		Symbol:  string(Happy),
		Meaning: "content, at ease",
		Mood:    true,
	}, Glyph{
		Key:     "neutral",
		Symbol:  string(Neutral),
		Meaning: "neither up nor down",
		Mood:    true,
	}, Glyph{
		Key:     "sad",
		Symbol:  string(Sad),
		Meaning: "down",
		Mood:    true,
	}, Glyph{
		Key:     "angry",
		Symbol:  string(Angry),
		Meaning: "frustrated",
		Mood:    true,
	}, Glyph{
		Key:     "excited",
		Symbol:  string(Excited),
		Meaning: "thrilled",
		Mood:    true,
	}, Glyph{
		Key:     "tired",
		Symbol:  string(Tired),
		Meaning: "running on empty",
		Mood:    true,
	})

	return g
}

// MarkerFor returns the marker symbol for an element kind key, or the empty
// string when the kind is not in the legend.
func MarkerFor(kind string) string {
	for _, g := range DefaultGlyphs() {
		if !g.Mood && g.Key == kind {
			return g.Symbol
		}
	}
	return ""
}

func (g Glyph) String() string {
	return g.Symbol
}
