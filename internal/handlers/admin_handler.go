package handlers

import (
	"html/template"
	"log"
	"net/http"

	"packcamp/internal/models"
	"packcamp/internal/service"
)

// AdminHandler serves the administration pages: roster management,
// household management, the event editor, reports, and backups.
type AdminHandler struct {
	rosterService       *service.RosterService
	eventService        *service.EventService
	registrationService *service.RegistrationService
	reportService       *service.ReportService
	backupService       *service.BackupService
	middleware          *Middleware
	templates           *template.Template
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(rosterService *service.RosterService, eventService *service.EventService, registrationService *service.RegistrationService, reportService *service.ReportService, backupService *service.BackupService, middleware *Middleware, templates *template.Template) *AdminHandler {
	return &AdminHandler{
		rosterService:       rosterService,
		eventService:        eventService,
		registrationService: registrationService,
		reportService:       reportService,
		backupService:       backupService,
		middleware:          middleware,
		templates:           templates,
	}
}

// ShowDashboard renders the admin landing page with roster counts
func (h *AdminHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	people, err := h.rosterService.GetAllPeople()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load people", err)
		return
	}
	households, err := h.rosterService.GetAllHouseholds()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load households", err)
		return
	}
	events, err := h.eventService.GetAllEvents()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load events", err)
		return
	}

	data := AdminDashboardViewData{
		Title:          "Admin - PackCamp",
		Person:         person,
		PeopleCount:    len(people),
		HouseholdCount: len(households),
		EventCount:     len(events),
		CSRFToken:      h.middleware.CSRFToken(r),
	}

	h.render(w, "admin_dashboard.tmpl", data)
}

// ShowPeople renders the full roster
func (h *AdminHandler) ShowPeople(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	people, err := h.rosterService.GetAllPeople()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load people", err)
		return
	}
	households, err := h.rosterService.GetAllHouseholds()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load households", err)
		return
	}

	data := AdminPeopleViewData{
		Title:      "People - PackCamp",
		Person:     person,
		People:     people,
		Households: households,
		CSRFToken:  h.middleware.CSRFToken(r),
	}

	h.render(w, "admin_people.tmpl", data)
}

// ShowPersonForm renders the create or edit form for a person. New records
// default to the acting user's household; a household query parameter
// overrides the preselection.
func (h *AdminHandler) ShowPersonForm(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	var subject *models.Person
	if raw := r.PathValue("id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		subject, err = h.rosterService.GetPerson(id)
		if err != nil {
			if err == service.ErrPersonNotFound {
				http.NotFound(w, r)
				return
			}
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load person", err)
			return
		}
	} else {
		defaultHousehold := person.HouseholdID
		if raw := r.URL.Query().Get("household"); raw != "" {
			if id, err := parseID(raw); err == nil {
				defaultHousehold = id
			}
		}
		subject = h.rosterService.NewPerson(defaultHousehold)
	}

	households, err := h.rosterService.GetAllHouseholds()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load households", err)
		return
	}

	data := AdminPersonViewData{
		Title:      "Edit Person - PackCamp",
		Person:     person,
		Subject:    subject,
		Households: households,
		Roles:      models.MemberRoles,
		Genders:    models.Genders,
		CSRFToken:  h.middleware.CSRFToken(r),
	}

	h.render(w, "admin_person.tmpl", data)
}

// SavePerson handles both create and update submissions from the person form
func (h *AdminHandler) SavePerson(w http.ResponseWriter, r *http.Request) {
	admin := GetPersonFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	var subject *models.Person
	if raw := r.FormValue("id"); raw != "" && raw != "0" {
		id, err := parseID(raw)
		if err != nil {
			http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
			return
		}
		subject, err = h.rosterService.GetPerson(id)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Person not found", "Failed to load person", err)
			return
		}
	} else {
		subject = h.rosterService.NewPerson(0)
	}

	subject.FirstName = r.FormValue("first_name")
	subject.LastName = r.FormValue("last_name")
	subject.Role = r.FormValue("role")
	subject.Gender = r.FormValue("gender")
	subject.Email = r.FormValue("email")
	subject.PhoneNumber = r.FormValue("phone_number")
	subject.Username = r.FormValue("username")
	subject.CanLogin = r.FormValue("can_login") == "on"
	subject.HasFoodAllergies = r.FormValue("has_food_allergies") == "on"
	subject.FoodAllergiesDetail = r.FormValue("food_allergies_detail")
	subject.HasFoodIntolerances = r.FormValue("has_food_intolerances") == "on"
	subject.FoodIntolerancesNote = r.FormValue("food_intolerances")

	// Admins cannot drop their own admin flag by editing themselves
	if subject.ID != admin.ID {
		subject.IsAdmin = r.FormValue("is_admin") == "on"
	}

	subject.HouseholdID = 0
	if raw := r.FormValue("household_id"); raw != "" && raw != "0" {
		id, err := parseID(raw)
		if err != nil {
			http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
			return
		}
		subject.HouseholdID = id
	}

	if password := r.FormValue("password"); password != "" {
		if err := subject.SetPassword(password); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to set password", err)
			return
		}
	}

	if _, err := h.rosterService.SavePerson(subject); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "Failed to save person", err)
		return
	}

	http.Redirect(w, r, "/admin/people", http.StatusSeeOther)
}

// DeletePerson removes a person from the roster
func (h *AdminHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	admin := GetPersonFromContext(r.Context())

	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.rosterService.DeletePerson(id, admin.ID); err != nil {
		switch err {
		case service.ErrSelfDeletion:
			http.Error(w, "You cannot delete your own account", http.StatusForbidden)
		case service.ErrPersonNotFound:
			http.NotFound(w, r)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to delete person", err)
		}
		return
	}

	http.Redirect(w, r, "/admin/people", http.StatusSeeOther)
}

// ShowHouseholds renders every household with its members
func (h *AdminHandler) ShowHouseholds(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	households, err := h.rosterService.GetHouseholdsWithMembers()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load households", err)
		return
	}

	data := AdminHouseholdsViewData{
		Title:      "Households - PackCamp",
		Person:     person,
		Households: households,
		CSRFToken:  h.middleware.CSRFToken(r),
	}

	h.render(w, "admin_households.tmpl", data)
}

// ShowHouseholdForm renders the create or edit form for a household
func (h *AdminHandler) ShowHouseholdForm(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	household := &models.Household{}
	var members []models.Person
	if raw := r.PathValue("id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		household, err = h.rosterService.GetHousehold(id)
		if err != nil {
			if err == service.ErrHouseholdNotFound {
				http.NotFound(w, r)
				return
			}
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load household", err)
			return
		}
		members, err = h.rosterService.HouseholdMembers(id)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load members", err)
			return
		}
	}

	data := AdminHouseholdViewData{
		Title:     "Edit Household - PackCamp",
		Person:    person,
		Household: household,
		Members:   members,
		CSRFToken: h.middleware.CSRFToken(r),
	}

	h.render(w, "admin_household.tmpl", data)
}

// SaveHousehold handles both create and update submissions
func (h *AdminHandler) SaveHousehold(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	household := &models.Household{}
	if raw := r.FormValue("id"); raw != "" && raw != "0" {
		id, err := parseID(raw)
		if err != nil {
			http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
			return
		}
		household, err = h.rosterService.GetHousehold(id)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Household not found", "Failed to load household", err)
			return
		}
	}

	household.Name = r.FormValue("name")
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

	http.Redirect(w, r, "/admin/households", http.StatusSeeOther)
}

// DeleteHousehold removes a household; members stay on the roster
func (h *AdminHandler) DeleteHousehold(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.rosterService.DeleteHousehold(id); err != nil {
		if err == service.ErrHouseholdNotFound {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to delete household", err)
		return
	}

	http.Redirect(w, r, "/admin/households", http.StatusSeeOther)
}

// ShowEventForm renders the create or edit form for an event
func (h *AdminHandler) ShowEventForm(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	event := &models.Event{
		EventType:      models.EventTypeCamping,
		DurationInDays: models.DefaultEventDurationDays,
	}
	if raw := r.PathValue("id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		event, err = h.eventService.GetEvent(id)
		if err != nil {
			if err == service.ErrEventNotFound {
				http.NotFound(w, r)
				return
			}
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load event", err)
			return
		}
	}

	data := AdminEventViewData{
		Title:      "Edit Event - PackCamp",
		Person:     person,
		Event:      event,
		EventTypes: []string{models.EventTypeCamping, models.EventTypeOther},
		CSRFToken:  h.middleware.CSRFToken(r),
	}

	h.render(w, "admin_event.tmpl", data)
}

// SaveEvent handles both create and update submissions
func (h *AdminHandler) SaveEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	event := &models.Event{}
	if raw := r.FormValue("id"); raw != "" && raw != "0" {
		id, err := parseID(raw)
		if err != nil {
			http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
			return
		}
		event, err = h.eventService.GetEvent(id)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Event not found", "Failed to load event", err)
			return
		}
	}

	event.EventType = r.FormValue("event_type")
	event.Date = r.FormValue("date")
	event.Location = r.FormValue("location")
	event.Details = r.FormValue("details")
	event.DurationInDays = service.ParseDuration(r.FormValue("duration_in_days"))

	if _, err := h.eventService.SaveEvent(event); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "Failed to save event", err)
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// DeleteEvent removes an event and its registrations
func (h *AdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.eventService.DeleteEvent(id); err != nil {
		if err == service.ErrEventNotFound {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to delete event", err)
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// ShowEventReport renders the full admin report for one event: meal
// totals, per-household costs, the contact list, and the emergency roster
func (h *AdminHandler) ShowEventReport(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		if err == service.ErrEventNotFound {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load event", err)
		return
	}

	report, err := h.reportService.EventReport(id, true)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to build event report", err)
		return
	}

	data := AdminEventReportViewData{
		Title:     "Event Report - PackCamp",
		Person:    person,
		Event:     event,
		Report:    report,
		CSRFToken: h.middleware.CSRFToken(r),
	}

	h.render(w, "admin_event_report.tmpl", data)
}

// SetRegistrationPaid toggles the payment flag on a registration
func (h *AdminHandler) SetRegistrationPaid(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	paid := r.FormValue("paid") == "on" || r.FormValue("paid") == "true"

	if err := h.registrationService.SetPaid(id, paid); err != nil {
		if err == service.ErrRegistrationNotFound {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to update payment", err)
		return
	}

	redirect := r.FormValue("redirect")
	if redirect == "" {
		redirect = "/home"
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// ShowBackup renders the database backup page
func (h *AdminHandler) ShowBackup(w http.ResponseWriter, r *http.Request) {
	person := GetPersonFromContext(r.Context())

	data := AdminBackupViewData{
		Title:     "Backup - PackCamp",
		Person:    person,
		CSRFToken: h.middleware.CSRFToken(r),
		Success:   r.URL.Query().Get("message"),
	}

	h.render(w, "admin_backup.tmpl", data)
}

// ExportBackup streams a JSON backup of the database
func (h *AdminHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="packcamp-backup.json"`)

	if err := h.backupService.ExportToWriter(w); err != nil {
		log.Printf("Failed to export backup: %v", err)
	}
}

// ImportBackup restores the database from an uploaded JSON backup
func (h *AdminHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("backup_file")
	if err != nil {
		http.Error(w, "Missing backup file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := h.backupService.ImportFromReader(file); err != nil {
		respondWithError(w, http.StatusBadRequest, "Import failed", "Failed to import backup", err)
		return
	}

	http.Redirect(w, r, "/admin/backup?message=Backup+imported", http.StatusSeeOther)
}

func (h *AdminHandler) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
