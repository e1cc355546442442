package puzzle

import (
	"math/rand"
	"strings"
	"time"
)

// fallbackWords is the local word list used when every Wordle endpoint fails.
var fallbackWords = []string{
	"crane", "slate", "adieu", "audio", "raise", "stare", "roate", "trace",
	"plumb", "ghost", "brick", "flame", "gloom", "honey", "ivory", "jolly",
	"knack", "lemon", "mirth", "noble", "ocean", "pride", "quiet", "robin",
	"shine", "tulip", "umbra", "vivid", "waltz", "yeast", "zesty", "amber",
	"blend", "charm", "dwell", "eagle", "frost", "grape", "haste", "inlet",
	"joker", "kneel", "latch", "moose", "nerve", "orbit", "pouch", "quilt",
	"roast", "sword", "thump", "unzip", "vapor", "wreck", "youth", "zonal",
	"baker", "cider", "dusty", "epoch", "fable", "gusto", "hyena", "ideal",
}

// FallbackWordle picks a deterministic word for date from the local list.
func FallbackWordle(date time.Time) *Wordle {
	number := WordleNumber(date)
	return &Wordle{
		Word:   fallbackWords[mod(number, len(fallbackWords))],
		Number: number,
		Date:   Day(date),
	}
}

var connectionsBank = [4][]ConnectionsGroup{
	{
		{Title: "Fruits", Words: []string{"APPLE", "MANGO", "PEACH", "GRAPE"}},
		{Title: "Wintry precipitation", Words: []string{"RAIN", "SNOW", "HAIL", "SLEET"}},
		{Title: "Furniture", Words: []string{"CHAIR", "TABLE", "COUCH", "DESK"}},
		{Title: "Primary and secondary colors", Words: []string{"RED", "BLUE", "GREEN", "ORANGE"}},
	},
	{
		{Title: "Card games", Words: []string{"POKER", "BRIDGE", "RUMMY", "HEARTS"}},
		{Title: "Units of time", Words: []string{"SECOND", "MINUTE", "HOUR", "WEEK"}},
		{Title: "Kitchen utensils", Words: []string{"WHISK", "LADLE", "TONGS", "SPATULA"}},
		{Title: "Planets", Words: []string{"MARS", "VENUS", "EARTH", "SATURN"}},
	},
	{
		{Title: "Shades of blue", Words: []string{"NAVY", "TEAL", "COBALT", "AZURE"}},
		{Title: "Chess pieces", Words: []string{"KING", "QUEEN", "ROOK", "BISHOP"}},
		{Title: "String instruments", Words: []string{"HARP", "VIOLIN", "CELLO", "BANJO"}},
		{Title: "Dog breeds", Words: []string{"BOXER", "POODLE", "BEAGLE", "HUSKY"}},
	},
	{
		{Title: "___BALL", Words: []string{"FOOT", "BASKET", "HAND", "DODGE"}},
		{Title: "Anagrams of LEAST", Words: []string{"SLATE", "STEAL", "TALES", "STALE"}},
		{Title: "Starts with a bird", Words: []string{"CROWD", "SWANKY", "OWLISH", "HENCE"}},
		{Title: "___FLY", Words: []string{"BUTTER", "DRAGON", "FIRE", "HOUSE"}},
	},
}

// FallbackConnections assembles one group per difficulty level, seeded by date.
func FallbackConnections(date time.Time) *Connections {
	number := WordleNumber(date)
	groups := make([]ConnectionsGroup, 0, len(connectionsBank))
	for level, bank := range connectionsBank {
		g := bank[mod(number+level, len(bank))]
		groups = append(groups, ConnectionsGroup{
			Title: g.Title,
			Level: level,
			Words: append([]string(nil), g.Words...),
		})
	}
	return &Connections{
		ID:     number,
		Date:   Day(date),
		Groups: groups,
	}
}

// ShuffledWords flattens groups and shuffles them with a seed, so the same
// seed always yields the same board.
func ShuffledWords(groups []ConnectionsGroup, seed int64) []string {
	var words []string
	for _, g := range groups {
		words = append(words, g.Words...)
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	return words
}

type strandsTheme struct {
	clue       string
	spangram   string
	themeWords []string
}

var strandsBank = []strandsTheme{
	{clue: "Pots and pans", spangram: "COOKWARE", themeWords: []string{"SKILLET", "WOK", "KETTLE", "PAN", "GRIDDLE"}},
	{clue: "Up in the air", spangram: "FLYINGTHINGS", themeWords: []string{"KITE", "BALLOON", "DRONE", "GLIDER", "BLIMP"}},
	{clue: "Garden party", spangram: "FLOWERBED", themeWords: []string{"TULIP", "DAISY", "ROSE", "LILY", "ORCHID"}},
	{clue: "Save room for this", spangram: "DESSERTS", themeWords: []string{"CAKE", "PIE", "COOKIE", "BROWNIE", "FUDGE"}},
	{clue: "Hit the road", spangram: "ROADTRIP", themeWords: []string{"MAP", "SNACKS", "PLAYLIST", "MOTEL", "FUEL"}},
}

const (
	StrandsRows = 8
	StrandsCols = 6
)

const strandsFiller = "ETAOINSHRDLU"

// FallbackStrands picks a theme by date and lays its words along a
// boustrophedon path through an 8x6 board, padding with seeded filler.
func FallbackStrands(date time.Time) *Strands {
	number := WordleNumber(date)
	theme := strandsBank[mod(number, len(strandsBank))]

	return &Strands{
		ID:         number,
		Date:       Day(date),
		Clue:       theme.clue,
		Spangram:   theme.spangram,
		ThemeWords: append([]string(nil), theme.themeWords...),
		Board:      snakeBoard(append([]string{theme.spangram}, theme.themeWords...), int64(number)),
	}
}

func snakeBoard(words []string, seed int64) []string {
	letters := []byte(strings.Join(words, ""))
	size := StrandsRows * StrandsCols
	if len(letters) > size {
		letters = letters[:size]
	}

	rng := rand.New(rand.NewSource(seed))
	for len(letters) < size {
		letters = append(letters, strandsFiller[rng.Intn(len(strandsFiller))])
	}

	board := make([]string, StrandsRows)
	for r := 0; r < StrandsRows; r++ {
		row := make([]byte, StrandsCols)
		for c := 0; c < StrandsCols; c++ {
			i := r*StrandsCols + c
			if r%2 == 1 {
				row[StrandsCols-1-c] = letters[i]
			} else {
				row[c] = letters[i]
			}
		}
		board[r] = string(row)
	}
	return board
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
