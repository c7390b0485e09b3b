package analyst

// DefaultStrategy is sent when no strategy was chosen.
const DefaultStrategy = "multi-strategy"

// Strategies are the labels offered for selection. The backend accepts any
// label; these are the ones it documents.
var Strategies = []string{
	DefaultStrategy,
	"trend-following",
	"mean reversion",
	"swing trading",
	"breakout/pullback",
}

// NextStrategy returns the label after current in list, wrapping around.
// A label not in list moves to the first entry.
func NextStrategy(list []string, current string) string {
	if len(list) == 0 {
		return current
	}
	for i, s := range list {
		if s == current {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}
