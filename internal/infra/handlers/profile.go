package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"intellialert/internal/domain/entities"
	"intellialert/internal/infra/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type ProfileHandlers struct {
	Logger   *logger.Logger
	Validate *validator.Validate
}

func NewProfileHandlers(logger *logger.Logger) *ProfileHandlers {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &ProfileHandlers{Logger: logger, Validate: validate}
}

type profileResponse struct {
	Message string `json:"message"`
	Profile string `json:"profile"`
}

type validationResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// UpdateProfile accepts a full emergency profile and echoes who it belongs to. Nothing is stored.
func (th *ProfileHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	userID := mux.Vars(r)["user_id"]

	var profile entities.UserEmergencyProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		th.Logger.Warn(fmt.Sprintf("Invalid profile payload for user %s: %v", userID, err))
		writeJSON(w, http.StatusBadRequest, validationResponse{Error: "invalid request body"})
		return
	}

	if err := th.Validate.Struct(profile); err != nil {
		var details []string
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fe := range fieldErrors {
				details = append(details, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
		}
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Error: "invalid profile", Details: details})
		return
	}

	th.Logger.Info(fmt.Sprintf("Profile update received for user %s", userID))
	writeJSON(w, http.StatusOK, profileResponse{Message: userID, Profile: profile.Owner()})
}
