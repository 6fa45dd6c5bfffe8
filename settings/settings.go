package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings contains everything that can be tuned about cover movement.
type Settings struct {
	Cover CoverSettings `toml:"cover"`
	Climb ClimbSettings `toml:"climb"`
	Vault VaultSettings `toml:"vault"`
	Probe ProbeSettings `toml:"probe"`
}

// CoverSettings controls how a character enters, keeps and peeks from cover.
type CoverSettings struct {
	// CanUseCorners is true if the character may peek from corners to aim.
	CanUseCorners bool `toml:"can_use_corners"`
	// LowCapsuleHeight is the height of the character's collision capsule when idle in low cover.
	LowCapsuleHeight float32 `toml:"low_capsule_height"`
	// LowAimCapsuleHeight is the height of the character's collision capsule when aiming back in low cover.
	LowAimCapsuleHeight float32 `toml:"low_aim_capsule_height"`
	// RotationSpeed is how quickly the character is orientated towards a direction.
	RotationSpeed float32 `toml:"rotation_speed"`
	// EnterDistance is the distance between a cover and the edge of the character's capsule below
	// which the character enters it.
	EnterDistance float32 `toml:"enter_distance"`
	// LeaveDistance is the distance between a cover and the edge of the character's capsule above
	// which the character leaves it.
	LeaveDistance float32 `toml:"leave_distance"`
	// PivotSideMargin keeps the camera pivot this far inside the cover edges.
	PivotSideMargin float32 `toml:"pivot_side_margin"`
	// CornerAimTriggerDistance is the distance from a side of a cover at which the character may
	// start aiming from a corner.
	CornerAimTriggerDistance float32 `toml:"corner_aim_trigger_distance"`
	TallSideEnterRadius      float32 `toml:"tall_side_enter_radius"`
	TallSideLeaveRadius      float32 `toml:"tall_side_leave_radius"`
	TallCornerOffset         float32 `toml:"tall_corner_offset"`
	LowSideEnterRadius       float32 `toml:"low_side_enter_radius"`
	LowSideLeaveRadius       float32 `toml:"low_side_leave_radius"`
	LowCornerOffset          float32 `toml:"low_corner_offset"`
	// DirectionChangeDelay is the time in seconds before the character moves again after turning.
	DirectionChangeDelay float32 `toml:"direction_change_delay"`
	// BackDelay is the time in seconds before the character takes a cover it is not facing.
	BackDelay float32 `toml:"back_delay"`
	// CornerOffset is the approximate shift of the corner peek animation, mirrored for the left corner.
	CornerOffset [3]float32 `toml:"corner_offset"`

	Update CoverUpdateSettings `toml:"update"`
	Angles CoverAngleSettings  `toml:"angles"`
}

// CoverUpdateSettings are the delays in seconds between cover searches.
type CoverUpdateSettings struct {
	IdleNonCover   float32 `toml:"idle_non_cover"`
	IdleCover      float32 `toml:"idle_cover"`
	MovingNonCover float32 `toml:"moving_non_cover"`
	MovingCover    float32 `toml:"moving_cover"`
}

// Delay returns the search delay for the given movement and occupancy.
func (s CoverUpdateSettings) Delay(moving, inCover bool) float32 {
	switch {
	case moving && inCover:
		return s.MovingCover
	case moving:
		return s.MovingNonCover
	case inCover:
		return s.IdleCover
	default:
		return s.IdleNonCover
	}
}

// CoverAngleSettings defines the angles used by various gameplay situations.
type CoverAngleSettings struct {
	// Front is the front area of a cover in degrees.
	Front float32 `toml:"front"`
	// LowCornerFront is the front area used to decide if a low corner can be peeked over.
	LowCornerFront float32 `toml:"low_corner_front"`
	// TallLeftCornerFront and TallRightCornerFront are the front areas used to decide if a tall
	// corner can be peeked from.
	TallLeftCornerFront  float32 `toml:"tall_left_corner_front"`
	TallRightCornerFront float32 `toml:"tall_right_corner_front"`
	// BackThrow is the area behind a cover where a grenade is thrown over the shoulder.
	BackThrow float32 `toml:"back_throw"`
	// LowWalkFaceChange keeps the facing direction while walking slightly against it.
	LowWalkFaceChange float32 `toml:"low_walk_face_change"`

	TallBack             FieldAnglesSustain `toml:"tall_back"`
	LowerAim             SideAngles         `toml:"lower_aim"`
	LeftCorner           TriggerAngles      `toml:"left_corner"`
	RightCorner          TriggerAngles      `toml:"right_corner"`
	LowAimFaceChange     SideAngles         `toml:"low_aim_face_change"`
	LowGrenadeFaceChange SideAngles         `toml:"low_grenade_face_change"`
	TallWallAim          FaceAngles         `toml:"tall_wall_aim"`
}

// TriggerAngles is a hysteresis pair: Enter applies while outside a state and Exit while inside it.
type TriggerAngles struct {
	Enter float32 `toml:"enter"`
	Exit  float32 `toml:"exit"`
}

// FaceAngles are margins for facing the same (Face) or the opposite (Opposite) direction as the
// character.
type FaceAngles struct {
	Face     float32 `toml:"face"`
	Opposite float32 `toml:"opposite"`
}

// FieldAnglesSustain is a FaceAngles pair that keeps a change to the opposite side for a while.
type FieldAnglesSustain struct {
	Face                float32 `toml:"face"`
	Opposite            float32 `toml:"opposite"`
	OppositeSustainTime float32 `toml:"opposite_sustain_time"`
}

// SideAngles are margins used when the character faces the left or the right of a cover.
type SideAngles struct {
	Left  float32 `toml:"left"`
	Right float32 `toml:"right"`
}

// ClimbSettings controls climbing on top of a cover.
type ClimbSettings struct {
	// MaxHeight is the highest cover that can be climbed.
	MaxHeight       float32 `toml:"max_height"`
	CapsuleHeight   float32 `toml:"capsule_height"`
	VerticalScale   float32 `toml:"vertical_scale"`
	HorizontalScale float32 `toml:"horizontal_scale"`
	Push            float32 `toml:"push"`
	PushOn          float32 `toml:"push_on"`
	PushOff         float32 `toml:"push_off"`
	CollisionOff    float32 `toml:"collision_off"`
	CollisionOn     float32 `toml:"collision_on"`
}

// VaultSettings controls vaulting over a cover.
type VaultSettings struct {
	// MaxHeight is the highest cover that can be vaulted over.
	MaxHeight float32 `toml:"max_height"`
	// MaxDistance is how far past the cover the landing spot is probed.
	MaxDistance     float32 `toml:"max_distance"`
	CapsuleHeight   float32 `toml:"capsule_height"`
	FallTime        float32 `toml:"fall_time"`
	VerticalScale   float32 `toml:"vertical_scale"`
	HorizontalScale float32 `toml:"horizontal_scale"`
	Push            float32 `toml:"push"`
	PushOn          float32 `toml:"push_on"`
	PushOff         float32 `toml:"push_off"`
	CollisionOff    float32 `toml:"collision_off"`
	CollisionOn     float32 `toml:"collision_on"`
}

// ProbeSettings are the ray lengths and offsets used to classify a climb.
type ProbeSettings struct {
	// TopLift raises every probe above the top of the cover.
	TopLift float32 `toml:"top_lift"`
	// Forward is the length of the ray cast forward over the cover.
	Forward float32 `toml:"forward"`
	// Up is the length of the ray cast up above the cover.
	Up float32 `toml:"up"`
	// UpOffset moves the upward ray this far forward onto the cover.
	UpOffset float32 `toml:"up_offset"`
	// Down is the length of the ray cast down behind the cover.
	Down float32 `toml:"down"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Cover: DefaultCoverSettings(),
		Climb: ClimbSettings{
			MaxHeight:       2.0,
			CapsuleHeight:   1.5,
			VerticalScale:   1.0,
			HorizontalScale: 1.05,
			Push:            0.5,
			PushOn:          0.6,
			PushOff:         0.9,
			CollisionOff:    0.3,
			CollisionOn:     0.7,
		},
		Vault: VaultSettings{
			MaxHeight:       1.1,
			MaxDistance:     1.2,
			CapsuleHeight:   1.5,
			FallTime:        0.7,
			VerticalScale:   1.2,
			HorizontalScale: 0.8,
			PushOff:         1.0,
			CollisionOn:     0.7,
		},
		Probe: ProbeSettings{
			TopLift:  0.1,
			Forward:  0.5,
			Up:       2.0,
			UpOffset: 0.3,
			Down:     0.5,
		},
	}
}

// DefaultCoverSettings returns the default cover settings.
func DefaultCoverSettings() CoverSettings {
	return CoverSettings{
		CanUseCorners:            true,
		LowCapsuleHeight:         0.75,
		LowAimCapsuleHeight:      1.25,
		RotationSpeed:            20,
		EnterDistance:            0.15,
		LeaveDistance:            0.25,
		PivotSideMargin:          0.5,
		CornerAimTriggerDistance: 0.6,
		TallSideEnterRadius:      0.15,
		TallSideLeaveRadius:      0.05,
		TallCornerOffset:         0.25,
		LowSideEnterRadius:       0.3,
		LowSideLeaveRadius:       0.2,
		LowCornerOffset:          0.4,
		DirectionChangeDelay:     0.25,
		BackDelay:                0.5,
		CornerOffset:             [3]float32{0.8, 0, 0},
		Update: CoverUpdateSettings{
			IdleNonCover:   10,
			IdleCover:      2,
			MovingNonCover: 0.5,
			MovingCover:    0.1,
		},
		Angles: CoverAngleSettings{
			Front:                140,
			LowCornerFront:       90,
			TallLeftCornerFront:  180,
			TallRightCornerFront: 120,
			BackThrow:            120,
			LowWalkFaceChange:    60,
			TallBack:             FieldAnglesSustain{Face: 20, Opposite: 30, OppositeSustainTime: 1},
			LowerAim:             SideAngles{Left: -5, Right: 10},
			LeftCorner:           TriggerAngles{Enter: -15, Exit: -17},
			RightCorner:          TriggerAngles{Enter: -25, Exit: -27},
			LowAimFaceChange:     SideAngles{Left: 0, Right: 20},
			LowGrenadeFaceChange: SideAngles{Left: 0, Right: 20},
			TallWallAim:          FaceAngles{Face: 40, Opposite: 20},
		},
	}
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Save(path, DefaultSettings())
	}
	return errors.New("settings file already exists")
}

// Save encodes the settings to the file at path, replacing it.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed writing settings file: %w", err)
	}
	return nil
}

// Load will load the settings from the settings file at path. Values missing from the file keep their
// defaults. If the file does not exist, the defaults are written to it and returned.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, Save(path, s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}
	if err = toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	return s, nil
}
