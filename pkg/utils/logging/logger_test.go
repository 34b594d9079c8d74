package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/checkin/pkg/utils/logging"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, expected := range testCases {
		level, err := logging.ParseLevel(input)
		gt.NoError(t, err)
		gt.Equal(t, level, expected)
	}

	_, err := logging.ParseLevel("verbose")
	gt.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("json")
	gt.NoError(t, err)
	gt.Equal(t, f, logging.FormatJSON)

	f, err = logging.ParseFormat("")
	gt.NoError(t, err)
	gt.Equal(t, f, logging.FormatAuto)

	_, err = logging.ParseFormat("xml")
	gt.Error(t, err)
}

func TestNewAutoFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.LevelInfo, &buf, logging.FormatAuto)

	logger.Debug("hidden")
	logger.Info("check-in submitted", "project", "customer-portal")

	gt.S(t, buf.String()).Contains(`"msg":"check-in submitted"`)
	gt.S(t, buf.String()).NotContains("hidden")
}
