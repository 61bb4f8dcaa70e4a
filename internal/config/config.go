package config

import (
	"os"
	"strconv"
)

// Config is loaded once at startup from environment variables.
type Config struct {
	Port string

	// LLM analysis
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	// Detection backend: pigo, onnx or remote
	Detector      string
	CascadePath   string
	ModelPath     string
	SidecarSocket string

	// Smart crop
	TargetWidth         int
	TargetHeight        int
	SmoothingWindow     int
	SampleStride        int
	ConfidenceThreshold float64

	SubtitleLang string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_API_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),
		Detector:      getEnv("DETECTOR", "pigo"),
		CascadePath:   getEnv("CASCADE_PATH", "models/facefinder"),
		ModelPath:     getEnv("DETECTOR_MODEL_PATH", "models/person.onnx"),
		SidecarSocket: getEnv("DETECTOR_SOCKET", "/tmp/detector.sock"),

		TargetWidth:         getEnvInt("TARGET_WIDTH", 1080),
		TargetHeight:        getEnvInt("TARGET_HEIGHT", 1920),
		SmoothingWindow:     getEnvInt("SMOOTHING_WINDOW", 25),
		SampleStride:        getEnvInt("SAMPLE_STRIDE", 5),
		ConfidenceThreshold: getEnvFloat("CONFIDENCE_THRESHOLD", 0.5),

		SubtitleLang: getEnv("SUBTITLE_LANG", "en"),
	}
}

func getEnv(k, d string) string {
	if val, ok := os.LookupEnv(k); ok {
		return val
	}
	return d
}

func getEnvInt(k string, d int) int {
	if val, ok := os.LookupEnv(k); ok {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return d
}

func getEnvFloat(k string, d float64) float64 {
	if val, ok := os.LookupEnv(k); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return d
}
