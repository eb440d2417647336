package ingest

import (
	"encoding/json"

	"github.com/lox/mawj/internal/models"
)

const (
	FlagWaveNegative       = "wave_negative"
	FlagWaveUnlikely       = "wave_unlikely"
	FlagSeaTempOutOfRange  = "sea_temp_out_of_range"
	FlagAirTempOutOfRange  = "air_temp_out_of_range"
	FlagWaveDirInvalid     = "wave_dir_invalid"
	FlagWindDirInvalid     = "wind_dir_invalid"
	FlagCurrentDirInvalid  = "current_dir_invalid"
	FlagWindSpeedUnlikely  = "wind_speed_unlikely"
	FlagGustBelowWind      = "gust_below_wind"
	FlagCloudCoverInvalid  = "cloud_cover_invalid"
	FlagWavePeriodNegative = "wave_period_negative"
	FlagCurrentNegative    = "current_negative"
)

// ValidateSnapshot flags implausible readings. It never alters the snapshot;
// the flags are for logging and the report's quality field.
func ValidateSnapshot(s models.Snapshot) []string {
	var flags []string

	if s.WaveHeight < 0 {
		flags = append(flags, FlagWaveNegative)
	} else if s.WaveHeight > 20 {
		flags = append(flags, FlagWaveUnlikely)
	}

	if s.WavePeriod < 0 {
		flags = append(flags, FlagWavePeriodNegative)
	}

	if s.SeaTemp < -2 || s.SeaTemp > 40 {
		flags = append(flags, FlagSeaTempOutOfRange)
	}

	if s.AirTemp < -10 || s.AirTemp > 55 {
		flags = append(flags, FlagAirTempOutOfRange)
	}

	if invalidBearing(s.WaveDirection) {
		flags = append(flags, FlagWaveDirInvalid)
	}
	if invalidBearing(s.WindDirection) {
		flags = append(flags, FlagWindDirInvalid)
	}
	if invalidBearing(s.CurrentDirection) {
		flags = append(flags, FlagCurrentDirInvalid)
	}

	if s.WindSpeed < 0 || s.WindSpeed > 250 {
		flags = append(flags, FlagWindSpeedUnlikely)
	}
	if s.WindGusts > 0 && s.WindGusts < s.WindSpeed {
		flags = append(flags, FlagGustBelowWind)
	}

	if s.CurrentSpeed < 0 {
		flags = append(flags, FlagCurrentNegative)
	}

	if s.CloudCover < 0 || s.CloudCover > 100 {
		flags = append(flags, FlagCloudCoverInvalid)
	}

	return flags
}

func invalidBearing(deg float64) bool {
	return deg < 0 || deg > 360
}

// QualityFlagsToJSON encodes flags as a JSON array, or "" when there are none.
func QualityFlagsToJSON(flags []string) string {
	if len(flags) == 0 {
		return ""
	}
	b, _ := json.Marshal(flags)
	return string(b)
}
