package models

// Accepted source kinds for a summary.
const (
	InputText = "text"
	InputPDF  = "pdf"
	InputURL  = "url"
)

// SummaryOptions is embedded into the summaries table and echoed back to
// clients so a summary can be regenerated with the same knobs.
type SummaryOptions struct {
	Type   string `gorm:"type:varchar(16);not null" json:"type"`
	Length string `gorm:"type:varchar(16);not null" json:"length"`
	Focus  string `gorm:"type:varchar(255)" json:"focus,omitempty"`
}

type SummaryModel struct {
	Base
	UserID        string         `gorm:"type:char(36);index;not null" json:"user"`
	InputType     string         `gorm:"type:varchar(8);not null" json:"inputType"`
	Input         string         `gorm:"type:longtext;not null" json:"input"`
	InputFileName string         `gorm:"type:varchar(255)" json:"inputFileName,omitempty"`
	Options       SummaryOptions `gorm:"embedded;embeddedPrefix:option_" json:"summaryOptions"`
	Summary       string         `gorm:"type:text;not null" json:"summary"`
}

func (SummaryModel) TableName() string {
	return "summaries"
}
