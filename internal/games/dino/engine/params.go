package engine

// Params holds every tunable of the simulation. All values are in world units
// (pixels), seconds, or milliseconds as noted.
type Params struct {
	Physics   PhysicsParams
	Speed     SpeedParams
	Player    PlayerParams
	Hitbox    HitboxParams
	Obstacles ObstacleParams
	Clouds    CloudParams
}

// PhysicsParams controls vertical motion.
type PhysicsParams struct {
	Gravity      float64 // units/s², positive is down
	JumpVelocity float64 // units/s, negative is up
	GroundOffset float64 // distance from the bottom of the world to the ground line
}

// Boost is a one-off speed bonus applied the first time Score reaches Score.
type Boost struct {
	Score float64
	Boost float64
}

// SpeedParams controls scrolling and score progression.
type SpeedParams struct {
	Initial           float64 // units/s
	Max               float64 // units/s
	Increment         float64 // added at every milestone
	MilestoneInterval float64 // score points between milestones
	ScoreRate         float64 // score per unit travelled
	Progression       bool    // false keeps the speed constant
	Boosts            []Boost
}

// PlayerParams describes the runner.
type PlayerParams struct {
	X                float64
	Width            float64
	Height           float64
	CrouchFactor     float64 // crouched height = Height * CrouchFactor
	AnimationFrameMs float64
}

// Hitbox shrinks a bounding box by InsetX on the left and right and InsetY
// on the top and bottom.
type Hitbox struct {
	InsetX float64
	InsetY float64
}

// HitboxParams holds the insets for both entity kinds.
type HitboxParams struct {
	Runner   Hitbox
	Obstacle Hitbox
}

// SizeSpec is the unscaled size of an obstacle class.
type SizeSpec struct {
	Width  float64
	Height float64
}

// PatternMember is one obstacle of a pattern group.
type PatternMember struct {
	Size    Size
	OffsetX float64
	Scale   float64
}

// Pattern is a fixed arrangement of obstacles spawned together.
type Pattern struct {
	Name    string
	Members []PatternMember
}

// ObstacleParams controls obstacle generation.
type ObstacleParams struct {
	MinIntervalMs float64
	MaxIntervalMs float64
	LargeWeight   float64 // probability that a single obstacle is large
	MinScale      float64
	MaxScale      float64
	Small         SizeSpec
	Large         SizeSpec
	Variants      int     // sprite variants per size class
	PatternChance float64 // probability that a spawn is a pattern group
	Patterns      []Pattern
}

// CloudParams controls decorative clouds.
type CloudParams struct {
	Limit       int
	SpawnChance float64 // per step
	MinSpeed    float64 // units/s
	MaxSpeed    float64 // units/s
	Width       float64
	Height      float64
}

// DefaultPatterns returns the built-in obstacle groups.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "triple", Members: []PatternMember{
			{Size: SizeSmall, OffsetX: 0, Scale: 0.8},
			{Size: SizeSmall, OffsetX: 50, Scale: 0.8},
			{Size: SizeSmall, OffsetX: 100, Scale: 0.8},
		}},
		{Name: "step", Members: []PatternMember{
			{Size: SizeSmall, OffsetX: 0, Scale: 0.7},
			{Size: SizeLarge, OffsetX: 80, Scale: 1},
		}},
		{Name: "wall", Members: []PatternMember{
			{Size: SizeLarge, OffsetX: 0, Scale: 1},
			{Size: SizeSmall, OffsetX: 100, Scale: 0.6},
			{Size: SizeSmall, OffsetX: 140, Scale: 0.7},
		}},
	}
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Physics: PhysicsParams{
			Gravity:      1200,
			JumpVelocity: -600,
			GroundOffset: 100,
		},
		Speed: SpeedParams{
			Initial:           400,
			Max:               800,
			Increment:         20,
			MilestoneInterval: 100,
			ScoreRate:         0.01,
			Progression:       true,
		},
		Player: PlayerParams{
			X:                80,
			Width:            60,
			Height:           64,
			CrouchFactor:     0.6,
			AnimationFrameMs: 100,
		},
		Hitbox: HitboxParams{
			Runner:   Hitbox{InsetX: 10},
			Obstacle: Hitbox{InsetX: 5},
		},
		Obstacles: ObstacleParams{
			MinIntervalMs: 800,
			MaxIntervalMs: 2000,
			LargeWeight:   0.5,
			MinScale:      0.8,
			MaxScale:      1.2,
			Small:         SizeSpec{Width: 24, Height: 50},
			Large:         SizeSpec{Width: 34, Height: 70},
			Variants:      3,
			PatternChance: 0.3,
			Patterns:      DefaultPatterns(),
		},
		Clouds: CloudParams{
			Limit:       5,
			SpawnChance: 0.05,
			MinSpeed:    20,
			MaxSpeed:    50,
			Width:       68,
			Height:      28,
		},
	}
}

func (p Params) sizeOf(sz Size) SizeSpec {
	if sz == SizeLarge {
		return p.Obstacles.Large
	}
	return p.Obstacles.Small
}
