package handlers

import (
	"packcamp/internal/models"
	"packcamp/internal/service"
)

type LoginViewData struct {
	Title       string
	Error       string
	Success     string
	Username    string
	GoogleLogin bool
}

type RegisterViewData struct {
	Title    string
	Error    string
	Username string
	Email    string
}

type HomeViewData struct {
	Title          string
	Person         *models.Person
	UpcomingEvents []models.Event
	PastEvents     []models.Event
}

type ProfileViewData struct {
	Title     string
	Person    *models.Person
	Roles     []string
	Genders   []string
	CSRFToken string
	Error     string
	Success   string
}

type HouseholdViewData struct {
	Title     string
	Person    *models.Person
	Household *models.Household
	Members   []models.Person
	Roles     []string
	Genders   []string
	CSRFToken string
	Error     string
	Success   string
}

type EventDetailViewData struct {
	Title     string
	Person    *models.Person
	Event     *models.Event
	Upcoming  bool
	Report    *service.EventReport
	CSRFToken string
}

type RegisterFamilyViewData struct {
	Title     string
	Person    *models.Person
	Event     *models.Event
	Members   []service.MemberRegistration
	CSRFToken string
	Error     string
	Success   string
}

type AdminDashboardViewData struct {
	Title          string
	Person         *models.Person
	PeopleCount    int
	HouseholdCount int
	EventCount     int
	CSRFToken      string
}

type AdminPeopleViewData struct {
	Title      string
	Person     *models.Person
	People     []models.Person
	Households []models.Household
	CSRFToken  string
}

type AdminPersonViewData struct {
	Title      string
	Person     *models.Person
	Subject    *models.Person
	Households []models.Household
	Roles      []string
	Genders    []string
	CSRFToken  string
	Error      string
}

type AdminHouseholdsViewData struct {
	Title      string
	Person     *models.Person
	Households []models.HouseholdWithMembers
	CSRFToken  string
}

type AdminHouseholdViewData struct {
	Title     string
	Person    *models.Person
	Household *models.Household
	Members   []models.Person
	CSRFToken string
	Error     string
}

type AdminEventViewData struct {
	Title      string
	Person     *models.Person
	Event      *models.Event
	EventTypes []string
	CSRFToken  string
	Error      string
}

type AdminEventReportViewData struct {
	Title     string
	Person    *models.Person
	Event     *models.Event
	Report    *service.EventReport
	CSRFToken string
}

type AdminBackupViewData struct {
	Title     string
	Person    *models.Person
	CSRFToken string
	Error     string
	Success   string
}
