package controllers

import (
	"net/http"
	"strconv"

	"github.com/vuminhngo/techstore-backend/api/responses"
	"github.com/vuminhngo/techstore-backend/api/validators"
	"github.com/vuminhngo/techstore-backend/internal/loyalty"
	pkgerrors "github.com/vuminhngo/techstore-backend/pkg/errors"
	"github.com/vuminhngo/techstore-backend/pkg/logger"
	"github.com/vuminhngo/techstore-backend/pkg/redis"
)

type upsertSettingRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

var knownSettings = map[string]struct{}{
	loyalty.SettingSilver:  {},
	loyalty.SettingGold:    {},
	loyalty.SettingDiamond: {},
}

// AdminSettingsList returns the tier threshold settings currently in force,
// including defaults for entries with no stored override.
func AdminSettingsList(thresholds *loyalty.ThresholdSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := thresholds.Current(r.Context())
		responses.WriteSuccess(w, map[string]int{
			loyalty.SettingSilver:  current.Silver,
			loyalty.SettingGold:    current.Gold,
			loyalty.SettingDiamond: current.Diamond,
		})
	}
}

// AdminSettingsUpsert stores a tier threshold override.
func AdminSettingsUpsert(settings redis.SettingStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertSettingRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, ok := knownSettings[req.Name]; !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown setting").
				WithDetails(map[string]any{"name": req.Name}))
			return
		}
		if v, err := strconv.Atoi(req.Value); err != nil || v < 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "setting value must be a non-negative integer"))
			return
		}

		if err := settings.SetSetting(r.Context(), req.Name, req.Value); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store setting"))
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"name":  req.Name,
			"value": req.Value,
		})
	}
}
