package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"packcamp/internal/models"
	"packcamp/internal/service"
)

// EventHandler serves event detail pages and family registration
type EventHandler struct {
	eventService        *service.EventService
	registrationService *service.RegistrationService
	reportService       *service.ReportService
	middleware          *Middleware
	templates           *template.Template
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *service.EventService, registrationService *service.RegistrationService, reportService *service.ReportService, middleware *Middleware, templates *template.Template) *EventHandler {
	return &EventHandler{
		eventService:        eventService,
		registrationService: registrationService,
		reportService:       reportService,
		middleware:          middleware,
		templates:           templates,
	}
}

// ShowEvent renders one event with the attendance report visible to members
func (h *EventHandler) ShowEvent(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	eventID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		if err == service.ErrEventNotFound {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load event", err)
		return
	}

	report, err := h.reportService.EventReport(eventID, person.IsAdmin)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to build event report", err)
		return
	}

	data := EventDetailViewData{
		Title:     "Event - PackCamp",
		Person:    person,
		Event:     event,
		Upcoming:  event.IsUpcoming(time.Now()),
		Report:    report,
		CSRFToken: h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "event_detail.tmpl", data); err != nil {
		log.Printf("Error rendering event detail template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// ShowRegisterFamily renders the family registration form for one event
func (h *EventHandler) ShowRegisterFamily(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	eventID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		if err == service.ErrEventNotFound {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load event", err)
		return
	}

	members, err := h.registrationService.FamilyRegistrationState(person, eventID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load registrations", err)
		return
	}

	data := RegisterFamilyViewData{
		Title:     "Register - PackCamp",
		Person:    person,
		Event:     event,
		Members:   members,
		CSRFToken: h.middleware.CSRFToken(r),
		Success:   r.URL.Query().Get("message"),
	}

	if err := h.templates.ExecuteTemplate(w, "register_family.tmpl", data); err != nil {
		log.Printf("Error rendering registration template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// RegisterFamily handles the family registration form submission. Checkbox
// names carry the member ID, e.g. "stay_friday_night_12". A member with no
// boxes ticked is withdrawn from the event.
func (h *EventHandler) RegisterFamily(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	eventID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		if err == service.ErrEventNotFound {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load event", err)
		return
	}
	if !event.IsUpcoming(time.Now()) {
		http.Error(w, "Registration is closed for past events", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	// Only members listed on the rendered form may be touched
	members, err := h.registrationService.FamilyRegistrationState(person, eventID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load registrations", err)
		return
	}

	selections := make(map[int64]models.RegistrationSelection, len(members))
	for _, member := range members {
		id := member.Person.ID
		selections[id] = models.RegistrationSelection{
			StayFridayNight:      formFlag(r, "stay_friday_night", id),
			StaySaturdayNight:    formFlag(r, "stay_saturday_night", id),
			EatSaturdayBreakfast: formFlag(r, "eat_saturday_breakfast", id),
			EatSaturdayLunch:     formFlag(r, "eat_saturday_lunch", id),
			EatSaturdayDinner:    formFlag(r, "eat_saturday_dinner", id),
			EatSundayBreakfast:   formFlag(r, "eat_sunday_breakfast", id),
		}
	}

	if err := h.registrationService.SubmitFamilyRegistration(r.Context(), person, eventID, selections); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to save registrations", err)
		return
	}

	http.Redirect(w, r, formRedirect(eventID), http.StatusSeeOther)
}

func formFlag(r *http.Request, name string, personID int64) bool {
	return r.FormValue(fmt.Sprintf("%s_%d", name, personID)) == "on"
}

func formRedirect(eventID int64) string {
	return fmt.Sprintf("/events/%d/register?message=Registration+saved", eventID)
}
