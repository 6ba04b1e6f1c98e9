package domain

// SettingsKey is the fixed key of the singleton settings row.
const SettingsKey = "default"

// AppSettings is the single shared site configuration record. All fields are
// optional; nil means the field has never been saved.
type AppSettings struct {
	CompanyName   *string `json:"companyName"`
	ContactEmail  *string `json:"contactEmail"`
	ContactPhone  *string `json:"contactPhone"`
	HeroVideoURL  *string `json:"heroVideoUrl"`
	HeroPosterURL *string `json:"heroPosterUrl"`
}
