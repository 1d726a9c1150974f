package seeds

import (
	"fmt"
	"time"

	"github.com/kendall-kelly/snapfix-api/logger"
	"github.com/kendall-kelly/snapfix-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const day = 24 * time.Hour

// fixtures carries the rows inserted so far so later seeders can reference their ids
type fixtures struct {
	now       time.Time
	users     []models.User
	addresses []models.Address
	bookings  []models.Booking
	employees []models.Employee
}

func (f *fixtures) ago(d time.Duration) string {
	return models.Timestamp(f.now.Add(-d))
}

type seeder struct {
	name string
	run  func(tx *gorm.DB, f *fixtures) (int, error)
}

var seeders = []seeder{
	{"users", seedUsers},
	{"addresses", seedAddresses},
	{"employees", seedEmployees},
	{"bookings", seedBookings},
	{"feedback", seedFeedback},
}

// Run inserts the sample data set in a single transaction
func Run(db *gorm.DB) error {
	return RunAt(db, time.Now())
}

// RunAt is Run with timestamps relative to now
func RunAt(db *gorm.DB, now time.Time) error {
	log := logger.GetLogger()
	f := &fixtures{now: now}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range seeders {
			count, err := s.run(tx, f)
			if err != nil {
				return fmt.Errorf("seeding %s: %w", s.name, err)
			}
			log.Info("Seeder completed", zap.String("seeder", s.name), zap.Int("rows", count))
		}
		return nil
	})
}

func str(s string) *string { return &s }

func seedUsers(tx *gorm.DB, f *fixtures) (int, error) {
	rows := []struct {
		phone string
		name  *string
		age   time.Duration
	}{
		{"9876543210", str("Rajesh Kumar"), 30 * day},
		{"9988776655", str("Priya Sharma"), 25 * day},
		{"9123456789", str("Amit Patel"), 20 * day},
		{"9876501234", str("Sneha Reddy"), 15 * day},
		{"9988112233", nil, 10 * day},
	}

	for _, r := range rows {
		f.users = append(f.users, models.User{
			PhoneNumber: r.phone,
			Name:        r.name,
			CreatedAt:   f.ago(r.age),
			UpdatedAt:   f.ago(r.age),
		})
	}
	if err := tx.Create(&f.users).Error; err != nil {
		return 0, err
	}
	return len(f.users), nil
}

func seedAddresses(tx *gorm.DB, f *fixtures) (int, error) {
	rows := []struct {
		user      int
		building  *string
		street    string
		city      string
		state     string
		pincode   string
		isDefault bool
		age       time.Duration
	}{
		{0, str("Shanti Apartments, Flat 302"), "MG Road", "Mumbai", "Maharashtra", "400001", true, 25 * day},
		{0, str("Office Address"), "Bandra West", "Mumbai", "Maharashtra", "400050", false, 20 * day},
		{0, str("Parents House"), "Andheri East", "Mumbai", "Maharashtra", "400069", false, 15 * day},
		{1, str("Green Heights, B-404"), "Koramangala", "Bangalore", "Karnataka", "560034", true, 22 * day},
		{1, str("HSR Layout Villa"), "Sector 1, HSR Layout", "Bangalore", "Karnataka", "560102", false, 18 * day},
		{2, str("DLF Phase 2, Tower A"), "Gurgaon", "Gurgaon", "Haryana", "122002", true, 19 * day},
		{2, str("Office Complex"), "Cyber City", "Gurgaon", "Haryana", "122015", false, 12 * day},
		{2, str("Weekend Home"), "Sohna Road", "Gurgaon", "Haryana", "122103", false, 8 * day},
		{3, str("Lakeside Residency, 5th Floor"), "Banjara Hills", "Hyderabad", "Telangana", "500034", true, 14 * day},
		{3, str("Tech Park Office"), "HITEC City", "Hyderabad", "Telangana", "500081", false, 10 * day},
		{4, str("Rose Apartments"), "Salt Lake", "Kolkata", "West Bengal", "700091", true, 9 * day},
		{4, nil, "Park Street", "Kolkata", "West Bengal", "700016", false, 5 * day},
	}

	for _, r := range rows {
		f.addresses = append(f.addresses, models.Address{
			UserID:            f.users[r.user].ID,
			ApartmentBuilding: r.building,
			StreetArea:        str(r.street),
			City:              str(r.city),
			State:             str(r.state),
			Pincode:           str(r.pincode),
			IsDefault:         r.isDefault,
			CreatedAt:         f.ago(r.age),
		})
	}
	if err := tx.Create(&f.addresses).Error; err != nil {
		return 0, err
	}
	return len(f.addresses), nil
}

func seedEmployees(tx *gorm.DB, f *fixtures) (int, error) {
	rows := []struct {
		phone          string
		name           string
		specialization string
		status         string
	}{
		{"9000000001", "Ramesh Yadav", models.ServicePlumber, models.EmployeeStatusAvailable},
		{"9000000002", "Anil Verma", models.ServiceElectrician, models.EmployeeStatusAvailable},
		{"9000000003", "Raju Singh", models.ServiceCarpenter, "busy"},
		{"9000000004", "Suresh Naik", models.ServicePainter, models.EmployeeStatusAvailable},
		{"9000000005", "Lakshmi Devi", models.ServiceHouseHelp, "offline"},
	}

	for _, r := range rows {
		f.employees = append(f.employees, models.Employee{
			PhoneNumber:    r.phone,
			Name:           r.name,
			Specialization: r.specialization,
			Status:         r.status,
			CreatedAt:      f.ago(40 * day),
			UpdatedAt:      f.ago(40 * day),
		})
	}
	if err := tx.Create(&f.employees).Error; err != nil {
		return 0, err
	}
	return len(f.employees), nil
}

// seedBookings writes bookings 1..13 in order; feedback refers to them by position
func seedBookings(tx *gorm.DB, f *fixtures) (int, error) {
	rows := []struct {
		address     int
		serviceType string
		subService  string
		description string
		status      string
		employee    int // -1 when nobody is assigned yet
		age         time.Duration
		completedIn time.Duration
	}{
		{0, models.ServicePlumber, "Leak repair", "Bathroom tap leaking continuously", models.StatusCompleted, 0, 21 * day, 2 * day},
		{1, models.ServiceElectrician, "Fan installation", "Install two ceiling fans in the cabin", models.StatusCompleted, 1, 16 * day, 2 * day},
		{2, models.ServiceCarpenter, "Furniture assembly", "Assemble a wardrobe and a study table", models.StatusCompleted, 2, 11 * day, day},
		{3, models.ServicePainter, "Wall painting", "Repaint the living room walls", models.StatusConfirmed, 3, 6 * day, 0},
		{4, models.ServiceHouseHelp, "Deep cleaning", "Full home deep cleaning before guests arrive", models.StatusPending, -1, 2 * day, 0},
		{5, models.ServiceElectrician, "Socket repair", "Three power outlets not working", models.StatusCompleted, 1, 13 * day, 2 * day},
		{6, models.ServicePlumber, "Drain cleaning", "Kitchen drain blocked", models.StatusInProgress, 0, day, 0},
		{8, models.ServiceCarpenter, "Door repair", "Main door hinge broken, door does not close", models.StatusCompleted, 2, 9 * day, 2 * day},
		{9, models.ServiceElectrician, "Wiring check", "Frequent tripping in the office", models.StatusCancelled, -1, 8 * day, 0},
		{10, models.ServicePlumber, "Pipe installation", "New water pipe line to the balcony", models.StatusCompleted, 0, 7 * day, 2 * day},
		{11, models.ServiceHouseHelp, "Kitchen cleaning", "", models.StatusPending, -1, 12 * time.Hour, 0},
		{3, models.ServicePlumber, "Geyser installation", "Install a new geyser in the bathroom", models.StatusConfirmed, 0, 3 * day, 0},
		{5, models.ServicePainter, "Wall painting", "Paint two bedrooms", models.StatusCompleted, 3, 18 * day, 2 * day},
	}

	for _, r := range rows {
		address := f.addresses[r.address]
		booking := models.Booking{
			UserID:      address.UserID,
			AddressID:   address.ID,
			ServiceType: r.serviceType,
			SubService:  str(r.subService),
			Status:      r.status,
			BookingDate: f.ago(r.age),
			CreatedAt:   f.ago(r.age),
		}
		if r.description != "" {
			booking.WorkDescription = str(r.description)
		}
		if r.employee >= 0 {
			employee := f.employees[r.employee]
			booking.ProfessionalName = str(employee.Name)
			booking.ProfessionalContact = str(employee.PhoneNumber)
		}
		if r.status == models.StatusCompleted {
			booking.CompletionDate = str(f.ago(r.age - r.completedIn))
		}
		f.bookings = append(f.bookings, booking)
	}
	if err := tx.Create(&f.bookings).Error; err != nil {
		return 0, err
	}
	return len(f.bookings), nil
}

func seedFeedback(tx *gorm.DB, f *fixtures) (int, error) {
	rows := []struct {
		booking  int // 1-based position in the bookings seed
		rating   int
		comments string
		age      time.Duration
	}{
		{1, 5, "Excellent service! Ramesh was very professional and fixed the leak quickly.", 19 * day},
		{2, 4, "Good work, but took slightly longer than expected.", 14 * day},
		{3, 5, "Perfect assembly job. Very neat and clean work.", 9 * day},
		{6, 5, "Anil was very knowledgeable and fixed all outlets efficiently.", 11 * day},
		{8, 4, "Door works perfectly now. Raju did a good job.", 7 * day},
		{10, 5, "Great service, pipe installed properly without any issues.", 5 * day},
		{13, 3, "Painting is okay, but some areas need touch-up. Expected better finish.", 16 * day},
	}

	feedback := make([]models.Feedback, 0, len(rows))
	for _, r := range rows {
		booking := f.bookings[r.booking-1]
		feedback = append(feedback, models.Feedback{
			BookingID: booking.ID,
			UserID:    booking.UserID,
			Rating:    r.rating,
			Comments:  str(r.comments),
			CreatedAt: f.ago(r.age),
		})
	}
	if err := tx.Create(&feedback).Error; err != nil {
		return 0, err
	}
	return len(feedback), nil
}
