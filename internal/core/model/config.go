package model

import "errors"

// Default values used when a setting is not supplied.
const (
	DefaultConcentrationMinutes  = 25
	DefaultBreakMinutes          = 5
	DefaultLongerBreakMinutes    = 20
	DefaultCountUntilLongerBreak = 4
)

// ErrBuilderUsed is returned when a Builder is used after Build.
var ErrBuilderUsed = errors.New("configuration builder already built")

// Configuration contains the interval settings consumed by the pomodoro state machine.
// Values are not validated; zero or negative values make the time guards trivially true.
type Configuration struct {
	ConcentrationMinutes  int
	BreakMinutes          int
	LongerBreakMinutes    int
	CountUntilLongerBreak int
}

// DefaultConfiguration returns the classic 25/5/20 schedule with a longer break after four short ones.
func DefaultConfiguration() Configuration {
	return Configuration{
		ConcentrationMinutes:  DefaultConcentrationMinutes,
		BreakMinutes:          DefaultBreakMinutes,
		LongerBreakMinutes:    DefaultLongerBreakMinutes,
		CountUntilLongerBreak: DefaultCountUntilLongerBreak,
	}
}

// Builder assembles a Configuration starting from the defaults.
// A Builder is single-use: once Build has been called every further call fails.
type Builder struct {
	config Configuration
	built  bool
	err    error
}

// NewBuilder returns a Builder seeded with DefaultConfiguration.
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfiguration()}
}

func (builder *Builder) ConcentrationMinutes(minutes int) *Builder {
	if builder.checkNotBuilt() {
		builder.config.ConcentrationMinutes = minutes
	}
	return builder
}

func (builder *Builder) BreakMinutes(minutes int) *Builder {
	if builder.checkNotBuilt() {
		builder.config.BreakMinutes = minutes
	}
	return builder
}

func (builder *Builder) LongerBreakMinutes(minutes int) *Builder {
	if builder.checkNotBuilt() {
		builder.config.LongerBreakMinutes = minutes
	}
	return builder
}

func (builder *Builder) CountUntilLongerBreak(count int) *Builder {
	if builder.checkNotBuilt() {
		builder.config.CountUntilLongerBreak = count
	}
	return builder
}

// Build returns the assembled Configuration. It fails with ErrBuilderUsed if the
// builder was already built or a setter was called after building.
func (builder *Builder) Build() (Configuration, error) {
	if !builder.checkNotBuilt() {
		return Configuration{}, builder.err
	}
	builder.built = true
	config := builder.config
	builder.config = Configuration{}
	return config, nil
}

// MustBuild is like Build but panics on error. Intended for tests and static setup.
func (builder *Builder) MustBuild() Configuration {
	config, err := builder.Build()
	if err != nil {
		panic(err)
	}
	return config
}

func (builder *Builder) checkNotBuilt() bool {
	if builder.built {
		builder.err = ErrBuilderUsed
		return false
	}
	return true
}
