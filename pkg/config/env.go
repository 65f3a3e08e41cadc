// pkg/config/env.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables that override file configuration.
const (
	EnvGravity       = "HEXBOUNCE_GRAVITY"
	EnvFriction      = "HEXBOUNCE_FRICTION"
	EnvBounce        = "HEXBOUNCE_BOUNCE"
	EnvAirResistance = "HEXBOUNCE_AIR_RESISTANCE"
	EnvHexagonRadius = "HEXBOUNCE_HEXAGON_RADIUS"
	EnvRotationSpeed = "HEXBOUNCE_ROTATION_SPEED"
	EnvBallRadius    = "HEXBOUNCE_BALL_RADIUS"
	EnvTickRate      = "HEXBOUNCE_TICK_RATE"
	EnvTimeScale     = "HEXBOUNCE_TIME_SCALE"
)

// ApplyEnvironmentOverrides replaces config values with any HEXBOUNCE_*
// variables that are set. Every malformed variable is reported; valid ones
// are still applied.
func ApplyEnvironmentOverrides(config *SimulationConfig) error {
	if config == nil {
		return ErrNilConfig
	}

	floats := []struct {
		key    string
		target *float64
	}{
		{EnvGravity, &config.Physics.Gravity},
		{EnvFriction, &config.Physics.Friction},
		{EnvBounce, &config.Physics.Bounce},
		{EnvAirResistance, &config.Physics.AirResistance},
		{EnvHexagonRadius, &config.Hexagon.Radius},
		{EnvRotationSpeed, &config.Hexagon.RotationSpeed},
		{EnvBallRadius, &config.Ball.Radius},
		{EnvTimeScale, &config.Loop.TimeScale},
	}

	var errs []error
	for _, f := range floats {
		value, ok, err := getEnvAsFloat(f.key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			*f.target = value
		}
	}

	rate, ok, err := getEnvAsInt(EnvTickRate)
	switch {
	case err != nil:
		errs = append(errs, err)
	case ok:
		config.Loop.TickRate = rate
	}

	return errors.Join(errs...)
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func getEnvAsFloat(key string) (float64, bool, error) {
	raw, ok := lookupEnv(key)
	if !ok {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s=%q: %w", key, raw, err)
	}
	return value, true, nil
}

func getEnvAsInt(key string) (int, bool, error) {
	raw, ok := lookupEnv(key)
	if !ok {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s=%q: %w", key, raw, err)
	}
	return value, true, nil
}
