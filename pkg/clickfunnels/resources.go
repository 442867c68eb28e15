package clickfunnels

import "time"

// Resource carries the fields every ClickFunnels record has.
type Resource struct {
	ID          int64      `json:"id"                     yaml:"id"`
	PublicID    string     `json:"public_id,omitempty"    yaml:"public_id,omitempty"`
	WorkspaceID int64      `json:"workspace_id,omitempty" yaml:"workspace_id,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"   yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"   yaml:"updated_at,omitempty"`
}

// Team is an account-level team.
type Team struct {
	Resource

	Name string `json:"name" yaml:"name"`
}

// Workspace belongs to a team and owns a tenant subdomain.
type Workspace struct {
	Resource

	TeamID    int64  `json:"team_id,omitempty" yaml:"team_id,omitempty"`
	Name      string `json:"name"              yaml:"name"`
	Subdomain string `json:"subdomain"         yaml:"subdomain"`
}

// Selector returns the workspace selector for this workspace.
func (w Workspace) Selector() WorkspaceSelector {
	return WorkspaceSelector{ID: w.ID, Subdomain: w.Subdomain}
}

// Contact is a person in a workspace.
type Contact struct {
	Resource

	EmailAddress string            `json:"email_address,omitempty" yaml:"email_address,omitempty"`
	FirstName    string            `json:"first_name,omitempty"    yaml:"first_name,omitempty"`
	LastName     string            `json:"last_name,omitempty"     yaml:"last_name,omitempty"`
	PhoneNumber  string            `json:"phone_number,omitempty"  yaml:"phone_number,omitempty"`
	TimeZone     string            `json:"time_zone,omitempty"     yaml:"time_zone,omitempty"`
	TagIDs       []int64           `json:"tag_ids,omitempty"       yaml:"tag_ids,omitempty"`
	CustomFields map[string]string `json:"custom_attributes,omitempty" yaml:"custom_attributes,omitempty"`
}

// Tag labels contacts.
type Tag struct {
	Resource

	Name  string `json:"name"            yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// AppliedTag links a tag to a contact.
type AppliedTag struct {
	Resource

	ContactID int64 `json:"contact_id" yaml:"contact_id"`
	TagID     int64 `json:"tag_id"     yaml:"tag_id"`
}

// Order is a purchase.
type Order struct {
	Resource

	ContactID         int64  `json:"contact_id,omitempty"         yaml:"contact_id,omitempty"`
	OrderNumber       int64  `json:"order_number,omitempty"       yaml:"order_number,omitempty"`
	Currency          string `json:"currency,omitempty"           yaml:"currency,omitempty"`
	TotalAmount       string `json:"total_amount,omitempty"       yaml:"total_amount,omitempty"`
	PaymentStatus     string `json:"payment_status,omitempty"     yaml:"payment_status,omitempty"`
	FulfillmentStatus string `json:"fulfillment_status,omitempty" yaml:"fulfillment_status,omitempty"`
}

// Product is a sellable item.
type Product struct {
	Resource

	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Visible     *bool  `json:"visible_in_store,omitempty" yaml:"visible_in_store,omitempty"`
	Archived    bool   `json:"archived,omitempty"    yaml:"archived,omitempty"`
}

// Course is a members-area course.
type Course struct {
	Resource

	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Title       string `json:"title,omitempty"       yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Published   bool   `json:"published,omitempty"   yaml:"published,omitempty"`
}

// CourseSection groups lessons within a course.
type CourseSection struct {
	Resource

	CourseID  int64  `json:"course_id,omitempty" yaml:"course_id,omitempty"`
	Title     string `json:"title"               yaml:"title"`
	Position  int    `json:"position,omitempty"  yaml:"position,omitempty"`
	Published bool   `json:"published,omitempty" yaml:"published,omitempty"`
}

// CourseLesson is a single lesson within a section.
type CourseLesson struct {
	Resource

	SectionID int64  `json:"section_id,omitempty" yaml:"section_id,omitempty"`
	Title     string `json:"title"                yaml:"title"`
	Content   string `json:"content,omitempty"    yaml:"content,omitempty"`
	Position  int    `json:"position,omitempty"   yaml:"position,omitempty"`
	Published bool   `json:"published,omitempty"  yaml:"published,omitempty"`
}

// Enrollment grants a contact access to a course.
type Enrollment struct {
	Resource

	CourseID  int64 `json:"course_id,omitempty" yaml:"course_id,omitempty"`
	ContactID int64 `json:"contact_id"          yaml:"contact_id"`
}

// Funnel is a sequence of pages.
type Funnel struct {
	Resource

	Name     string `json:"name"               yaml:"name"`
	Archived bool   `json:"archived,omitempty" yaml:"archived,omitempty"`
}

// FunnelPage is a published page.
type FunnelPage struct {
	Resource

	Name     string `json:"name"                yaml:"name"`
	FunnelID int64  `json:"funnel_id,omitempty" yaml:"funnel_id,omitempty"`
	Path     string `json:"path,omitempty"      yaml:"path,omitempty"`
}

// Webhook is an outgoing webhook endpoint.
type Webhook struct {
	Resource

	Name         string   `json:"name"                     yaml:"name"`
	URL          string   `json:"url"                      yaml:"url"`
	EventTypeIDs []string `json:"event_type_ids,omitempty" yaml:"event_type_ids,omitempty"`
}

// Form collects submissions.
type Form struct {
	Resource

	Name string `json:"name" yaml:"name"`
}

// FormSubmission is one submitted form.
type FormSubmission struct {
	Resource

	FormID    int64             `json:"form_id,omitempty"    yaml:"form_id,omitempty"`
	ContactID int64             `json:"contact_id,omitempty" yaml:"contact_id,omitempty"`
	Data      map[string]string `json:"data,omitempty"       yaml:"data,omitempty"`
}

// Image is an uploaded image asset.
type Image struct {
	Resource

	Name string `json:"name"          yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Segment is a saved contact filter.
type Segment struct {
	Resource

	Name string `json:"name" yaml:"name"`
}

// ShippingProfile groups shipping zones.
type ShippingProfile struct {
	Resource

	Name string `json:"name" yaml:"name"`
}

// ShippingZone groups shipping rates for a region.
type ShippingZone struct {
	Resource

	ProfileID int64  `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`
	Name      string `json:"name"                 yaml:"name"`
}

// ShippingRate is a price for shipping within a zone.
type ShippingRate struct {
	Resource

	ZoneID int64  `json:"zone_id,omitempty" yaml:"zone_id,omitempty"`
	Name   string `json:"name"              yaml:"name"`
	Price  string `json:"price,omitempty"   yaml:"price,omitempty"`
}

// ShippingPackage describes parcel dimensions.
type ShippingPackage struct {
	Resource

	Name string `json:"name" yaml:"name"`
}

// Named is implemented by records that can label a dropdown option.
type Named interface {
	Label() string
	Identifier() int64
}

// Label returns the team name.
func (t Team) Label() string { return t.Name }

// Identifier returns the team id.
func (t Team) Identifier() int64 { return t.ID }

// Label returns the tag name.
func (t Tag) Label() string { return t.Name }

// Identifier returns the tag id.
func (t Tag) Identifier() int64 { return t.ID }

// Label returns the course name, or its title when the name is empty.
func (c Course) Label() string {
	if c.Name != "" {
		return c.Name
	}

	return c.Title
}

// Identifier returns the course id.
func (c Course) Identifier() int64 { return c.ID }

// Label returns the form name.
func (f Form) Label() string { return f.Name }

// Identifier returns the form id.
func (f Form) Identifier() int64 { return f.ID }

// Label returns the shipping profile name.
func (s ShippingProfile) Label() string { return s.Name }

// Identifier returns the shipping profile id.
func (s ShippingProfile) Identifier() int64 { return s.ID }
