package game

const (
	ChunkSize      = 2000.0
	RenderDistance = 2 // chunks in each direction from the player's chunk
	WindowArea     = (2*RenderDistance + 1) * (2*RenderDistance + 1)
	FoodCap        = 300 // global targets, split evenly across the window
	BotCap         = 15

	PlayerStartRadius  = 20.0
	PlayerBaseSpeed    = 5.0
	PlayerDragPerUnit  = 0.015 // speed / (1 + k*radius)
	PlayerDeadbandDiv  = 4.0   // no movement within radius/4 of the target
	BoostMult          = 1.8
	EnergyMax          = 100.0
	EnergyDrainPerTick = 1.0
	EnergyRegenPerTick = 0.3

	DominanceMargin = 1.1 // absorber must exceed the other radius by 10%

	FoodRadius      = 7.0
	FoodScorePerR   = 2.0
	BotScorePerR    = 10.0
	BotRewardBase   = 100.0
	BotRewardPerR   = 10.0
	BotMinRadiusMul = 0.75 // spawn range relative to player radius
	BotMaxRadiusMul = 1.5
	BotSpeedBase    = 2.5
	BotSpeedRefR    = 15.0
	BotSpeedJitter  = 0.2

	ReevaluateChance = 0.005 // per tick
	ArrivalRadii     = 1.0
	DetectionRadii   = 25.0
	AlarmRadii       = 6.0
	PursuitRadii     = 12.0
	FleeRadii        = 8.0
	ChunkInset       = 50.0
	PatrolCandidates = 8
	PatrolRingRadii  = 5.0
	ArriveEpsilon    = 1.0

	CameraSmoothing   = 0.05
	CameraViewRadii   = 15.0
	CameraMinViewSpan = 200.0
	CameraMinZoom     = 0.05
	CameraMaxZoom     = 1.5
	DefaultViewportW  = 1280.0
	DefaultViewportH  = 720.0
)

// FoodQuota and BotQuota are the per-chunk shares of the global caps.
const (
	FoodQuota = FoodCap / WindowArea
	BotQuota  = (BotCap + WindowArea - 1) / WindowArea
)
