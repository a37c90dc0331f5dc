package model

import "time"

const (
	DefaultJobLocation = "Remote"
	DateLayout         = "2006-01-02"
)

type Job struct {
	ID          int64
	Title       string
	Company     string
	CompanyURL  string
	Description string
	Location    string
	DatePosted  time.Time
	IsActive    bool
	OwnerID     int64
}

// JobPatch carries the fields of a partial update. Nil fields are left unchanged.
type JobPatch struct {
	Title       *string
	Company     *string
	CompanyURL  *string
	Description *string
	Location    *string
	DatePosted  *time.Time
	IsActive    *bool
}

func (p JobPatch) IsEmpty() bool {
	return p.Title == nil && p.Company == nil && p.CompanyURL == nil && p.Description == nil &&
		p.Location == nil && p.DatePosted == nil && p.IsActive == nil
}

type JobView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanyURL  string `json:"company_url"`
	Description string `json:"description"`
	Location    string `json:"location"`
	DatePosted  string `json:"date_posted"`
	IsActive    bool   `json:"is_active"`
	OwnerID     int64  `json:"owner_id"`
}

func (j Job) View() JobView {
	return JobView{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		CompanyURL:  j.CompanyURL,
		Description: j.Description,
		Location:    j.Location,
		DatePosted:  j.DatePosted.Format(DateLayout),
		IsActive:    j.IsActive,
		OwnerID:     j.OwnerID,
	}
}

type DeleteJobResult struct {
	Message string `json:"message"`
}
