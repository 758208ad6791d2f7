package types

// Point is a cell coordinate on the grid, or a unit movement vector.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether pos lies inside the grid.
func (g Grid) Contains(pos Point) bool {
	return pos.X >= 0 && pos.X < g.Width && pos.Y >= 0 && pos.Y < g.Height
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Game constants
const (
	GridSize = 20

	InitialInterval = 150 // ms between movement ticks at the start of a run
	MinInterval     = 50  // floor of the base interval
	IntervalStep    = 2   // base interval decrease per food eaten

	DecayPeriodMs    = 100  // effect counter decay period
	SurprisePeriodMs = 5000 // surprise event tick period

	SpeedBoostTicks = 100 // decay ticks granted by Bonus food
	FreezeTicks     = 50  // decay ticks granted by Freeze food

	BonusEventDuration = 30 // surprise ticks a BonusEvent survives
	TrapDuration       = 50 // surprise ticks a Trap survives

	MinObstacles = 3
	MaxObstacles = 7

	SurpriseChance   = 0.1
	BonusEventChance = 0.7

	NormalScore     = 1
	BonusScore      = 3
	PoisonPenalty   = 1
	BonusEventScore = 5
)

// DefaultGrid is the square arena every run is played on.
var DefaultGrid = Grid{Width: GridSize, Height: GridSize}

// StartPosition is the single-segment snake every run begins with.
var StartPosition = Point{X: 10, Y: 10}
