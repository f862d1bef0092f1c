package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"

	"packcamp/internal/models"
	"packcamp/internal/service"
)

// MemberHandler serves the pages every logged-in person can reach: the
// event home page, their profile, and their household.
type MemberHandler struct {
	authService   *service.AuthService
	rosterService *service.RosterService
	eventService  *service.EventService
	middleware    *Middleware
	templates     *template.Template
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(authService *service.AuthService, rosterService *service.RosterService, eventService *service.EventService, middleware *Middleware, templates *template.Template) *MemberHandler {
	return &MemberHandler{
		authService:   authService,
		rosterService: rosterService,
		eventService:  eventService,
		middleware:    middleware,
		templates:     templates,
	}
}

// Home renders the event calendar split into upcoming and past
func (h *MemberHandler) Home(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	upcoming, past, err := h.eventService.UpcomingAndPast()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load events", err)
		return
	}

	data := HomeViewData{
		Title:          "Events - PackCamp",
		Person:         person,
		UpcomingEvents: upcoming,
		PastEvents:     past,
	}

	if err := h.templates.ExecuteTemplate(w, "home.tmpl", data); err != nil {
		log.Printf("Error rendering home template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// ShowProfile renders the profile edit page
func (h *MemberHandler) ShowProfile(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	h.renderProfile(w, r, person, "", r.URL.Query().Get("message"))
}

func (h *MemberHandler) renderProfile(w http.ResponseWriter, r *http.Request, person *models.Person, errMsg, success string) {
	data := ProfileViewData{
		Title:     "My Profile - PackCamp",
		Person:    person,
		Roles:     models.MemberRoles,
		Genders:   models.Genders,
		CSRFToken: h.middleware.CSRFToken(r),
		Error:     errMsg,
		Success:   success,
	}

	if err := h.templates.ExecuteTemplate(w, "profile.tmpl", data); err != nil {
		log.Printf("Error rendering profile template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// UpdateProfile handles the profile form submission. People edit their own
// identity and dietary details here; admin flags and household assignment
// stay admin-managed.
func (h *MemberHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	person.FirstName = r.FormValue("first_name")
	person.LastName = r.FormValue("last_name")
	person.Role = r.FormValue("role")
	person.Gender = r.FormValue("gender")
	person.Email = r.FormValue("email")
	person.PhoneNumber = r.FormValue("phone_number")
	person.HasFoodAllergies = r.FormValue("has_food_allergies") == "on"
	person.FoodAllergiesDetail = r.FormValue("food_allergies_detail")
	person.HasFoodIntolerances = r.FormValue("has_food_intolerances") == "on"
	person.FoodIntolerancesNote = r.FormValue("food_intolerances")

	if _, err := h.rosterService.SavePerson(person); err != nil {
		h.renderProfile(w, r, person, err.Error(), "")
		return
	}

	http.Redirect(w, r, "/profile?message=Profile+saved", http.StatusSeeOther)
}

// UpdatePassword handles the change-password form on the profile page
func (h *MemberHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	current := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirmation := r.FormValue("new_password_confirmation")

	if err := h.authService.UpdatePassword(r.Context(), person, current, newPassword, confirmation); err != nil {
		h.renderProfile(w, r, person, err.Error(), "")
		return
	}

	http.Redirect(w, r, "/profile?message=Password+changed", http.StatusSeeOther)
}

// ShowHousehold renders the person's household with its members and
// emergency details
func (h *MemberHandler) ShowHousehold(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	data := HouseholdViewData{
		Title:     "My Household - PackCamp",
		Person:    person,
		Roles:     models.MemberRoles,
		Genders:   models.Genders,
		CSRFToken: h.middleware.CSRFToken(r),
		Success:   r.URL.Query().Get("message"),
	}

	if person.HasHousehold() {
		household, err := h.rosterService.GetHousehold(person.HouseholdID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load household", err)
			return
		}
		members, err := h.rosterService.HouseholdMembers(person.HouseholdID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load household members", err)
			return
		}
		data.Household = household
		data.Members = members
	}

	if err := h.templates.ExecuteTemplate(w, "household.tmpl", data); err != nil {
		log.Printf("Error rendering household template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// UpdateHousehold lets a household member edit the emergency contact and
// vehicle details of their own household
func (h *MemberHandler) UpdateHousehold(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())
	if !person.HasHousehold() {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	household, err := h.rosterService.GetHousehold(person.HouseholdID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load household", err)
		return
	}

	household.EmergencyContact1FirstName = r.FormValue("emergency_contact_1_first_name")
	household.EmergencyContact1LastName = r.FormValue("emergency_contact_1_last_name")
	household.EmergencyContact1Phone = r.FormValue("emergency_contact_1_phone")
	household.EmergencyContact2FirstName = r.FormValue("emergency_contact_2_first_name")
	household.EmergencyContact2LastName = r.FormValue("emergency_contact_2_last_name")
	household.EmergencyContact2Phone = r.FormValue("emergency_contact_2_phone")
	household.CarLicensePlates = r.FormValue("car_license_plates")

	if _, err := h.rosterService.SaveHousehold(household); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "Failed to save household", err)
		return
	}

	http.Redirect(w, r, "/household?message=Household+saved", http.StatusSeeOther)
}

// CreateHousehold lets a person without a household start one and become
// its first member
func (h *MemberHandler) CreateHousehold(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())
	if person.HasHousehold() {
		http.Error(w, "You already belong to a household", http.StatusConflict)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	household := &models.Household{Name: r.FormValue("name")}
	created, err := h.rosterService.SaveHousehold(household)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "Failed to create household", err)
		return
	}

	person.HouseholdID = created.ID
	if _, err := h.rosterService.SavePerson(person); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to join household", err)
		return
	}

	http.Redirect(w, r, "/household?message=Household+created", http.StatusSeeOther)
}

// AddFamilyMember adds a non-login person to the acting person's household
func (h *MemberHandler) AddFamilyMember(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())
	if !person.HasHousehold() {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	member := h.rosterService.NewPerson(person.HouseholdID)
	member.FirstName = r.FormValue("first_name")
	member.LastName = r.FormValue("last_name")
	member.Role = r.FormValue("role")
	member.Gender = r.FormValue("gender")
	member.HasFoodAllergies = r.FormValue("has_food_allergies") == "on"
	member.FoodAllergiesDetail = r.FormValue("food_allergies_detail")
	member.HasFoodIntolerances = r.FormValue("has_food_intolerances") == "on"
	member.FoodIntolerancesNote = r.FormValue("food_intolerances")

	if _, err := h.rosterService.SavePerson(member); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "Failed to add family member", err)
		return
	}

	http.Redirect(w, r, "/household?message=Member+added", http.StatusSeeOther)
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
