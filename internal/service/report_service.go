package service

import (
	"fmt"
	"sort"

	"packcamp/internal/models"
	"packcamp/internal/repository"
)

// unknownHouseholdName buckets participants whose person record carries no
// household link.
const unknownHouseholdName = "Unknown"

// ReportService derives per-event attendance, cost, and logistics reports.
// Nothing here is stored; every report is computed from registrations on
// demand.
type ReportService struct {
	registrationRepo *repository.RegistrationRepository
	personRepo       *repository.PersonRepository
	householdRepo    *repository.HouseholdRepository
	mealPriceCents   int
}

// NewReportService creates a new report service
func NewReportService(registrationRepo *repository.RegistrationRepository, personRepo *repository.PersonRepository, householdRepo *repository.HouseholdRepository, mealPriceCents int) *ReportService {
	if mealPriceCents <= 0 {
		mealPriceCents = models.DefaultMealPriceCents
	}
	return &ReportService{
		registrationRepo: registrationRepo,
		personRepo:       personRepo,
		householdRepo:    householdRepo,
		mealPriceCents:   mealPriceCents,
	}
}

// ParticipantRow is one registered person in the event report. The
// sensitive fields carry data only on reports built for administrators.
type ParticipantRow struct {
	PersonID      int64
	Name          string
	HouseholdID   int64
	HouseholdName string
	Registration  models.Registration
	CostCents     int

	// Admin only
	Email            string
	PhoneNumber      string
	AllergyNote      string
	IntoleranceNote  string
	HasPaid          bool
	ShowPaymentState bool
}

// HouseholdCost rolls up the derived cost of one household's participants
type HouseholdCost struct {
	HouseholdID   int64
	HouseholdName string
	Participants  []ParticipantRow
	TotalCents    int
}

// MealTotals counts selections across every registration for one event
type MealTotals struct {
	FridayNight       int
	SaturdayNight     int
	SaturdayBreakfast int
	SaturdayLunch     int
	SaturdayDinner    int
	SundayBreakfast   int
	TotalMeals        int
	TotalCostCents    int
}

// EmergencyEntry is one household's on-site safety record
type EmergencyEntry struct {
	HouseholdName    string
	Contact1         string
	Contact2         string
	CarLicensePlates string
}

// EventReport is the full derived report for one event. The admin sections
// are nil when the report was built for a regular member.
type EventReport struct {
	Participants   []ParticipantRow
	HouseholdCosts []HouseholdCost

	// Admin only
	MealTotals    *MealTotals
	ContactEmails []string
	ContactPhones []string
	Emergencies   []EmergencyEntry
}

// BuildEventReport derives the report from registrations and the lookup
// tables. Participants sort by household name ascending with the household
// ID and then the person ID breaking ties; registrants without a household
// fall into an "Unknown" bucket. An empty registration list yields an
// empty report. forAdmin controls whether the sensitive fields and the
// admin-only sections are populated.
func BuildEventReport(regs []models.Registration, people map[int64]models.Person, households map[int64]models.Household, mealPriceCents int, forAdmin bool) *EventReport {
	report := &EventReport{}

	for _, reg := range regs {
		person, ok := people[reg.PersonID]
		if !ok {
			continue
		}

		row := ParticipantRow{
			PersonID:     person.ID,
			Name:         person.DisplayName(),
			Registration: reg,
			CostCents:    reg.CostCents(mealPriceCents),
		}
		if h, ok := households[person.HouseholdID]; ok {
			row.HouseholdID = h.ID
			row.HouseholdName = h.Name
		} else {
			row.HouseholdName = unknownHouseholdName
		}
		if forAdmin {
			row.Email = person.Email
			row.PhoneNumber = person.PhoneNumber
			if person.HasFoodAllergies {
				row.AllergyNote = person.FoodAllergiesDetail
				if row.AllergyNote == "" {
					row.AllergyNote = "Yes"
				}
			}
			if person.HasFoodIntolerances {
				row.IntoleranceNote = person.FoodIntolerancesNote
				if row.IntoleranceNote == "" {
					row.IntoleranceNote = "Yes"
				}
			}
			row.HasPaid = reg.HasPaid
			row.ShowPaymentState = true
		}
		report.Participants = append(report.Participants, row)
	}

	sortParticipants(report.Participants)
	report.HouseholdCosts = rollupHouseholdCosts(report.Participants)

	if forAdmin {
		report.MealTotals = buildMealTotals(regs, mealPriceCents)
		report.ContactEmails, report.ContactPhones = buildContactLists(report.Participants)
		report.Emergencies = buildEmergencies(report.Participants, households)
	}

	return report
}

func sortParticipants(rows []ParticipantRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].HouseholdName != rows[j].HouseholdName {
			return rows[i].HouseholdName < rows[j].HouseholdName
		}
		if rows[i].HouseholdID != rows[j].HouseholdID {
			return rows[i].HouseholdID < rows[j].HouseholdID
		}
		return rows[i].PersonID < rows[j].PersonID
	})
}

// rollupHouseholdCosts groups already-sorted rows into per-household cost
// blocks, preserving the row order.
func rollupHouseholdCosts(rows []ParticipantRow) []HouseholdCost {
	var costs []HouseholdCost
	for _, row := range rows {
		n := len(costs)
		if n == 0 || costs[n-1].HouseholdID != row.HouseholdID || costs[n-1].HouseholdName != row.HouseholdName {
			costs = append(costs, HouseholdCost{
				HouseholdID:   row.HouseholdID,
				HouseholdName: row.HouseholdName,
			})
			n++
		}
		costs[n-1].Participants = append(costs[n-1].Participants, row)
		costs[n-1].TotalCents += row.CostCents
	}
	return costs
}

func buildMealTotals(regs []models.Registration, mealPriceCents int) *MealTotals {
	totals := &MealTotals{}
	for _, reg := range regs {
		if reg.StayFridayNight {
			totals.FridayNight++
		}
		if reg.StaySaturdayNight {
			totals.SaturdayNight++
		}
		if reg.EatSaturdayBreakfast {
			totals.SaturdayBreakfast++
		}
		if reg.EatSaturdayLunch {
			totals.SaturdayLunch++
		}
		if reg.EatSaturdayDinner {
			totals.SaturdayDinner++
		}
		if reg.EatSundayBreakfast {
			totals.SundayBreakfast++
		}
		totals.TotalMeals += reg.MealCount()
		totals.TotalCostCents += reg.CostCents(mealPriceCents)
	}
	return totals
}

// buildContactLists collects the registrants' emails and phone numbers as
// two deduplicated, sorted lists.
func buildContactLists(rows []ParticipantRow) (emails, phones []string) {
	seenEmail := make(map[string]bool)
	seenPhone := make(map[string]bool)
	for _, row := range rows {
		if row.Email != "" && !seenEmail[row.Email] {
			seenEmail[row.Email] = true
			emails = append(emails, row.Email)
		}
		if row.PhoneNumber != "" && !seenPhone[row.PhoneNumber] {
			seenPhone[row.PhoneNumber] = true
			phones = append(phones, row.PhoneNumber)
		}
	}
	sort.Strings(emails)
	sort.Strings(phones)
	return emails, phones
}

// buildEmergencies lists each participating household once, in participant
// order, with its emergency contacts and plates.
func buildEmergencies(rows []ParticipantRow, households map[int64]models.Household) []EmergencyEntry {
	seen := make(map[int64]bool)
	var entries []EmergencyEntry
	for _, row := range rows {
		if row.HouseholdID == 0 || seen[row.HouseholdID] {
			continue
		}
		seen[row.HouseholdID] = true
		h, ok := households[row.HouseholdID]
		if !ok {
			continue
		}
		entries = append(entries, EmergencyEntry{
			HouseholdName:    h.Name,
			Contact1:         h.EmergencyContact1(),
			Contact2:         h.EmergencyContact2(),
			CarLicensePlates: h.CarLicensePlates,
		})
	}
	return entries
}

// EventReport loads everything needed for one event's report and builds it
func (s *ReportService) EventReport(eventID int64, forAdmin bool) (*EventReport, error) {
	regs, err := s.registrationRepo.GetByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	people, err := s.loadPeople()
	if err != nil {
		return nil, err
	}
	households, err := s.loadHouseholds()
	if err != nil {
		return nil, err
	}

	return BuildEventReport(regs, people, households, s.mealPriceCents, forAdmin), nil
}

func (s *ReportService) loadPeople() (map[int64]models.Person, error) {
	all, err := s.personRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	people := make(map[int64]models.Person, len(all))
	for _, p := range all {
		people[p.ID] = p
	}
	return people, nil
}

func (s *ReportService) loadHouseholds() (map[int64]models.Household, error) {
	all, err := s.householdRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}
	households := make(map[int64]models.Household, len(all))
	for _, h := range all {
		households[h.ID] = h
	}
	return households, nil
}

// MealPriceCents exposes the configured per-meal price for display
func (s *ReportService) MealPriceCents() int {
	return s.mealPriceCents
}
