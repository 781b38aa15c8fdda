package render

import (
	"image"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KeywordClass is a set of synonym substrings that trigger the same rule.
type KeywordClass struct {
	Name     string
	Keywords []string
}

// Matches reports whether the normalized prompt contains any keyword.
func (k KeywordClass) Matches(normalized string) bool {
	for _, keyword := range k.Keywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

var (
	NightClass    = KeywordClass{Name: "night", Keywords: []string{"night", "ночь"}}
	SunsetClass   = KeywordClass{Name: "sunset", Keywords: []string{"sunset", "закат"}}
	MountainClass = KeywordClass{Name: "mountain", Keywords: []string{"mountain", "гор"}}
	SunClass      = KeywordClass{Name: "sun", Keywords: []string{"sun", "солн"}}
	TreeClass     = KeywordClass{Name: "tree", Keywords: []string{"tree", "дерев"}}
)

// Rule binds a keyword class to a draw action.
type Rule struct {
	Class KeywordClass
	Draw  func(Drawer)
}

// Backgrounds are checked in order and the first match wins. DefaultBackground
// applies when none match.
var Backgrounds = []Rule{
	{Class: NightClass, Draw: drawNight},
	{Class: SunsetClass, Draw: drawSunset},
}

var DefaultBackground = Rule{Class: KeywordClass{Name: "day"}, Draw: drawDay}

// Overlays are all applied when they match, in this order.
var Overlays = []Rule{
	{Class: MountainClass, Draw: drawMountains},
	{Class: SunClass, Draw: drawSun},
	{Class: TreeClass, Draw: drawTree},
}

// Normalize lower-cases a prompt for keyword matching.
func Normalize(prompt string) string {
	// A Caser is stateful, so one is built per call.
	return cases.Lower(language.Und).String(prompt)
}

// Match is the set of rules selected for a prompt.
type Match struct {
	Background Rule
	Overlays   []Rule
}

func (m Match) Names() (background string, overlays []string) {
	for _, rule := range m.Overlays {
		overlays = append(overlays, rule.Class.Name)
	}
	return m.Background.Class.Name, overlays
}

// MatchPrompt selects the background and overlay rules for prompt.
func MatchPrompt(prompt string) Match {
	normalized := Normalize(prompt)
	match := Match{Background: DefaultBackground}
	for _, rule := range Backgrounds {
		if rule.Class.Matches(normalized) {
			match.Background = rule
			break
		}
	}
	for _, rule := range Overlays {
		if rule.Class.Matches(normalized) {
			match.Overlays = append(match.Overlays, rule)
		}
	}
	return match
}

func drawNight(d Drawer) {
	d.Fill(NightSky)
}

func drawSunset(d Drawer) {
	_, height := d.Size()
	d.FillLinearGradient(Point{X: 0, Y: 0}, Point{X: 0, Y: float64(height)}, SunsetTop, SunsetBottom)
}

func drawDay(d Drawer) {
	width, height := d.Size()
	d.FillLinearGradient(Point{X: 0, Y: 0}, Point{X: float64(width), Y: float64(height)}, DayStart, DayEnd)
}

func drawMountains(d Drawer) {
	d.FillPolygon([]Point{
		{X: 0, Y: 240},
		{X: 60, Y: 140},
		{X: 120, Y: 200},
		{X: 180, Y: 120},
		{X: 240, Y: 240},
	}, Rock)
}

func drawSun(d Drawer) {
	d.FillCircle(Point{X: 200, Y: 60}, 30, Sun)
}

func drawTree(d Drawer) {
	d.FillRect(image.Rect(40, 160, 50, 240), Rock)
	d.FillCircle(Point{X: 45, Y: 150}, 25, Canopy)
}
