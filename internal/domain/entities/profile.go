package entities

// Every field is a pointer or a slice so that "required" checks presence only.
// Empty strings and empty lists are accepted; absent or null fields are not.

type EmergencyContact struct {
	ID           *string `json:"id" validate:"required"`
	Name         *string `json:"name" validate:"required"`
	Relationship *string `json:"relationship" validate:"required"`
	PhoneNumber  *string `json:"phoneNumber" validate:"required"`
}

type MedicalInfo struct {
	Conditions  []string `json:"conditions" validate:"required"`
	Allergies   []string `json:"allergies" validate:"required"`
	Medications []string `json:"medications" validate:"required"`
	BloodType   *string  `json:"bloodType" validate:"required"`
	OrganDonor  *bool    `json:"organDonor" validate:"required"`
}

type EmergencyPreferences struct {
	PreferredHospital   *string `json:"preferredHospital" validate:"required"`
	DoctorName          *string `json:"doctorName" validate:"required"`
	DoctorPhone         *string `json:"doctorPhone" validate:"required"`
	SpecialInstructions *string `json:"specialInstructions" validate:"required"`
}

type LocationInfo struct {
	HomeAddress            *string  `json:"homeAddress" validate:"required"`
	WorkAddress            *string  `json:"workAddress" validate:"required"`
	OtherFrequentLocations []string `json:"otherFrequentLocations" validate:"required"`
}

// UserEmergencyProfile is submitted by the mobile client and echoed back. It is never stored.
type UserEmergencyProfile struct {
	FullName             *string               `json:"fullName" validate:"required"`
	DateOfBirth          *int64                `json:"dateOfBirth" validate:"required"`
	PhoneNumber          *string               `json:"phoneNumber" validate:"required"`
	EmergencyContacts    []EmergencyContact    `json:"emergencyContacts" validate:"required,dive"`
	MedicalInfo          *MedicalInfo          `json:"medicalInfo" validate:"required"`
	EmergencyPreferences *EmergencyPreferences `json:"emergencyPreferences" validate:"required"`
	LocationInfo         *LocationInfo         `json:"locationInfo" validate:"required"`
}

// Owner returns the profile's full name, or "" before validation has guaranteed it.
func (p UserEmergencyProfile) Owner() string {
	if p.FullName == nil {
		return ""
	}
	return *p.FullName
}
