package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmms-platform/cmms-service/internal/model"
)

func TestValidateSubmissionData(t *testing.T) {
	fields := []model.PortalField{
		{Name: "summary", Label: "Summary", Type: "text", Required: true},
		{Name: "severity", Label: "Severity", Type: "select", Options: []string{"low", "high"}},
		{Name: "photo", Label: "Photo", Type: "file", Required: true},
	}

	t.Run("valid", func(t *testing.T) {
		err := ValidateSubmissionData(fields, map[string]interface{}{
			"summary":  "pump is leaking",
			"severity": "high",
		})
		require.NoError(t, err)
	})

	t.Run("missing required", func(t *testing.T) {
		err := ValidateSubmissionData(fields, map[string]interface{}{"severity": "low"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "Summary")
	})

	t.Run("blank required", func(t *testing.T) {
		err := ValidateSubmissionData(fields, map[string]interface{}{"summary": "   "})
		require.Error(t, err)
	})

	t.Run("bad select option", func(t *testing.T) {
		err := ValidateSubmissionData(fields, map[string]interface{}{
			"summary":  "ok",
			"severity": "catastrophic",
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "catastrophic")
	})

	t.Run("required file fields are not data fields", func(t *testing.T) {
		// файлы приходят отдельно от data, здесь их отсутствие не ошибка
		err := ValidateSubmissionData(fields, map[string]interface{}{"summary": "ok"})
		require.NoError(t, err)
	})
}

func TestNewSubmissionCodeFormat(t *testing.T) {
	re := regexp.MustCompile(`^PS-[0-9A-F]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := newSubmissionCode()
		require.Regexp(t, re, code)
		require.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestWorkOrderTitle(t *testing.T) {
	portal := &model.Portal{Name: "Broken Equipment"}
	sub := &model.PortalSubmission{Code: "PS-AB12CD34"}

	require.Equal(t, "Broken Equipment (PS-AB12CD34)", workOrderTitle(portal, sub))

	sub.Data = map[string]interface{}{"title": "  HVAC down  "}
	require.Equal(t, "HVAC down", workOrderTitle(portal, sub))

	sub.Data = map[string]interface{}{"title": "   "}
	require.Equal(t, "Broken Equipment (PS-AB12CD34)", workOrderTitle(portal, sub))
}

func TestFlattenData(t *testing.T) {
	got := flattenData(map[string]interface{}{
		"location": "roof",
		"asset":    "AHU-3",
		"urgent":   true,
	})
	require.Equal(t, "asset: AHU-3\nlocation: roof\nurgent: true", got)

	require.Equal(t, "", flattenData(nil))
}
