package node

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
)

var contactFields = []string{
	"first_name", "last_name", "phone_number", "time_zone",
	"fb_url", "twitter_url", "instagram_url", "linkedin_url", "website_url",
}

// buildTable declares every supported (resource, operation) pair.
func buildTable() *dispatchTable {
	table := &dispatchTable{descriptors: make(map[Key]*Descriptor)}

	contacts(table)
	tags(table)
	orders(table)
	products(table)
	courses(table)
	funnels(table)
	webhooks(table)
	forms(table)
	images(table)
	segments(table)
	shipping(table)
	accounts(table)

	return table
}

func contacts(table *dispatchTable) {
	table.resource("contact", "Contact").
		op("create", &Descriptor{
			DisplayName: "Create",
			Method:      http.MethodPost,
			Path:        "/workspaces/{workspaceId}/contacts",
			Body:        envelope("contact", "additionalFields", strParam("email", "email_address")),
			Fields: []Field{
				stringField("email", "Email", true),
				collectionField("additionalFields", "Additional Fields", contactFields...),
			},
		}).
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/contacts/{contactId}",
			Fields:      []Field{idField("contactId", "Contact ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/contacts",
			Query: filters(map[string]string{
				"email_address": "filter[email_address]",
				"tag_id":        "filter[tag_id]",
			}),
			List:   true,
			Fields: append(listFields(), collectionField("filters", "Filters", "email_address", "tag_id")),
		}).
		op("update", &Descriptor{
			DisplayName: "Update",
			Method:      http.MethodPut,
			Path:        "/contacts/{contactId}",
			Body:        envelope("contact", "updateFields"),
			Fields: []Field{
				idField("contactId", "Contact ID"),
				collectionField("updateFields", "Update Fields", append([]string{"email_address"}, contactFields...)...),
			},
		}).
		op("delete", &Descriptor{
			DisplayName: "Delete",
			Method:      http.MethodDelete,
			Path:        "/contacts/{contactId}",
			Fields:      []Field{idField("contactId", "Contact ID")},
		}).
		op("upsert", &Descriptor{
			DisplayName: "Upsert",
			Method:      http.MethodPost,
			Path:        "/workspaces/{workspaceId}/contacts/upsert",
			Body:        upsertContactBody,
			Fields: []Field{
				stringField("email", "Email", true),
				collectionField("additionalFields", "Additional Fields", append(contactFields, "tag_ids")...),
			},
		}).
		op("applyTag", &Descriptor{
			DisplayName: "Apply Tag",
			Method:      http.MethodPost,
			Path:        "/contacts/{contactId}/applied_tags",
			Body:        envelope("contacts_tag", "", idParam("tagId", "tag_id")),
			Fields: []Field{
				idField("contactId", "Contact ID"),
				{Name: "tagId", DisplayName: "Tag Name or ID", Type: FieldOptions, Required: true, LoadOptions: LoaderTags},
			},
		}).
		op("removeTag", &Descriptor{
			DisplayName: "Remove Tag",
			Method:      http.MethodDelete,
			Path:        "/contacts/{contactId}/applied_tags/{tagId}",
			Fields: []Field{
				idField("contactId", "Contact ID"),
				{Name: "tagId", DisplayName: "Tag Name or ID", Type: FieldOptions, Required: true, LoadOptions: LoaderTags},
			},
		})
}

// upsertContactBody is the create body with "tag_ids" given as a
// comma-separated string turned into a list of integers.
func upsertContactBody(p *itemParams) (interface{}, error) {
	body, err := envelope("contact", "additionalFields", strParam("email", "email_address"))(p)
	if err != nil {
		return nil, err
	}

	contact, _ := body.(map[string]interface{})["contact"].(map[string]interface{})

	raw, ok := contact["tag_ids"].(string)
	if !ok {
		return body, nil
	}

	tagIDs, err := ParseTagIDs(raw)
	if err != nil {
		return nil, err
	}

	contact["tag_ids"] = tagIDs

	return body, nil
}

// ParseTagIDs splits "1, 2" into [1, 2]. Blank entries are skipped.
func ParseTagIDs(raw string) ([]int64, error) {
	tagIDs := make([]int64, 0)

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		_, err := clickfunnels.ValidateNumericID(part, "tag ID")
		if err != nil {
			return nil, err
		}

		tagID, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, &clickfunnels.ValidationError{Field: "tag ID", Value: part, Reason: "ID is out of range"}
		}

		tagIDs = append(tagIDs, tagID)
	}

	return tagIDs, nil
}

func tags(table *dispatchTable) {
	table.resource("tag", "Tag").
		op("create", &Descriptor{
			DisplayName: "Create",
			Method:      http.MethodPost,
			Path:        "/workspaces/{workspaceId}/tags",
			Body:        envelope("tag", "", strParam("name", "name"), strParam("color", "color")),
			Fields: []Field{
				stringField("name", "Name", true),
				{Name: "color", DisplayName: "Color", Type: FieldString, Default: "#4A90D9"},
			},
		}).
		op("delete", &Descriptor{
			DisplayName: "Delete",
			Method:      http.MethodDelete,
			Path:        "/tags/{tagId}",
			Fields:      []Field{idField("tagId", "Tag ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/tags",
			List:        true,
			Fields:      listFields(),
		})
}

func orders(table *dispatchTable) {
	table.resource("order", "Order").
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/orders/{orderId}",
			Fields:      []Field{idField("orderId", "Order ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/orders",
			Query: filters(map[string]string{
				"contact_id":         "filter[contact_id]",
				"payment_status":     "filter[payment_status]",
				"fulfillment_status": "filter[fulfillment_status]",
			}),
			List: true,
			Fields: append(listFields(),
				collectionField("filters", "Filters", "contact_id", "payment_status", "fulfillment_status")),
		})
}

func products(table *dispatchTable) {
	table.resource("product", "Product").
		op("create", &Descriptor{
			DisplayName: "Create",
			Method:      http.MethodPost,
			Path:        "/workspaces/{workspaceId}/products",
			Body:        envelope("product", "additionalFields", strParam("name", "name")),
			Fields: []Field{
				stringField("name", "Name", true),
				collectionField("additionalFields", "Additional Fields", "description", "visible_in_store", "visible_in_customer_center"),
			},
		}).
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/products/{productId}",
			Fields:      []Field{idField("productId", "Product ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/products",
			List:        true,
			Fields:      listFields(),
		}).
		op("update", &Descriptor{
			DisplayName: "Update",
			Method:      http.MethodPut,
			Path:        "/products/{productId}",
			Body:        envelope("product", "updateFields"),
			Fields: []Field{
				idField("productId", "Product ID"),
				collectionField("updateFields", "Update Fields", "name", "description", "visible_in_store", "visible_in_customer_center"),
			},
		}).
		op("delete", &Descriptor{
			DisplayName: "Delete",
			Method:      http.MethodDelete,
			Path:        "/products/{productId}",
			Fields:      []Field{idField("productId", "Product ID")},
		})
}

func courses(table *dispatchTable) {
	courseOption := Field{Name: "courseId", DisplayName: "Course Name or ID", Type: FieldOptions, Required: true, LoadOptions: LoaderCourses}

	table.resource("course", "Course").
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/courses/{courseId}",
			Fields:      []Field{courseOption},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/courses",
			List:        true,
			Fields:      listFields(),
		})

	table.resource("courseSection", "Course Section").
		op("create", &Descriptor{
			DisplayName: "Create",
			Method:      http.MethodPost,
			Path:        "/courses/{courseId}/sections",
			Body:        envelope("courses_section", "additionalFields", strParam("title", "title")),
			Fields: []Field{
				courseOption,
				stringField("title", "Title", true),
				collectionField("additionalFields", "Additional Fields", "description", "position"),
			},
		}).
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/courses/sections/{sectionId}",
			Fields:      []Field{idField("sectionId", "Section ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/courses/{courseId}/sections",
			List:        true,
			Fields:      listFields(courseOption),
		}).
		op("update", &Descriptor{
			DisplayName: "Update",
			Method:      http.MethodPut,
			Path:        "/courses/sections/{sectionId}",
			Body:        envelope("courses_section", "updateFields"),
			Fields: []Field{
				idField("sectionId", "Section ID"),
				collectionField("updateFields", "Update Fields", "title", "description", "position"),
			},
		})

	table.resource("courseLesson", "Course Lesson").
		op("create", &Descriptor{
			DisplayName: "Create",
			Method:      http.MethodPost,
			Path:        "/courses/sections/{sectionId}/lessons",
			Body:        lessonBody,
			Fields: []Field{
				courseOption,
				idField("sectionId", "Section ID"),
				stringField("title", "Title", true),
				collectionField("additionalFields", "Additional Fields", "body", "position", "published"),
			},
		}).
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/courses/lessons/{lessonId}",
			Fields:      []Field{idField("lessonId", "Lesson ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/courses/sections/{sectionId}/lessons",
			List:        true,
			Fields:      listFields(idField("sectionId", "Section ID")),
		}).
		op("update", &Descriptor{
			DisplayName: "Update",
			Method:      http.MethodPut,
			Path:        "/courses/lessons/{lessonId}",
			Body:        envelope("courses_lesson", "updateFields"),
			Fields: []Field{
				idField("lessonId", "Lesson ID"),
				collectionField("updateFields", "Update Fields", "title", "body", "position", "published"),
			},
		})

	table.resource("enrollment", "Enrollment").
		op("create", &Descriptor{
			DisplayName: "Create",
			Method:      http.MethodPost,
			Path:        "/courses/{courseId}/enrollments",
			Body:        envelope("enrollment", "", idParam("contactId", "contact_id")),
			Fields:      []Field{courseOption, idField("contactId", "Contact ID")},
		}).
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/courses/enrollments/{enrollmentId}",
			Body:        requireIDs("courseId"),
			Fields:      []Field{courseOption, idField("enrollmentId", "Enrollment ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/courses/{courseId}/enrollments",
			List:        true,
			Fields:      listFields(courseOption),
		})
}

// lessonBody validates the parent course as well, although only the section
// appears in the path.
func lessonBody(p *itemParams) (interface{}, error) {
	_, err := p.ID("courseId")
	if err != nil {
		return nil, err
	}

	return envelope("courses_lesson", "additionalFields", strParam("title", "title"))(p)
}

// requireIDs validates ID parameters that do not appear in the path and
// sends no body.
func requireIDs(names ...string) BodyFunc {
	return func(p *itemParams) (interface{}, error) {
		for _, name := range names {
			_, err := p.ID(name)
			if err != nil {
				return nil, err
			}
		}

		return nil, nil
	}
}

func funnels(table *dispatchTable) {
	table.resource("funnel", "Funnel").
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/funnels/{funnelId}",
			Fields:      []Field{idField("funnelId", "Funnel ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/funnels",
			List:        true,
			Fields:      listFields(),
		})

	table.resource("page", "Page").
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/pages/{pageId}",
			Fields:      []Field{idField("pageId", "Page ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/pages",
			Query:       filters(map[string]string{"funnel_pages": "funnel_pages"}),
			List:        true,
			Fields: append(listFields(), Field{
				Name:        "filters",
				DisplayName: "Filters",
				Type:        FieldCollection,
				Default:     map[string]interface{}{},
				Fields:      []Field{{Name: "funnel_pages", DisplayName: "Funnel Pages Only", Type: FieldBoolean, Default: false}},
			}),
		})
}

func webhooks(table *dispatchTable) {
	table.resource("webhook", "Webhook").
		op("create", &Descriptor{
			DisplayName: "Create",
			Method:      http.MethodPost,
			Path:        "/workspaces/{workspaceId}/webhooks/outgoing/endpoints",
			Body: envelope("webhooks_outgoing_endpoint", "",
				strParam("name", "name"), strParam("url", "url"), listParam("eventTypeIds", "event_type_ids")),
			Fields: []Field{
				stringField("name", "Name", true),
				stringField("url", "URL", true),
				{
					Name:        "eventTypeIds",
					DisplayName: "Event Types",
					Type:        FieldMultiOptions,
					Default:     []string{},
					Options:     webhookEventTypes,
				},
			},
		}).
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/webhooks/outgoing/endpoints/{webhookId}",
			Fields:      []Field{idField("webhookId", "Webhook ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/webhooks/outgoing/endpoints",
			List:        true,
			Fields:      listFields(),
		}).
		op("update", &Descriptor{
			DisplayName: "Update",
			Method:      http.MethodPut,
			Path:        "/webhooks/outgoing/endpoints/{webhookId}",
			Body:        envelope("webhooks_outgoing_endpoint", "updateFields"),
			Fields: []Field{
				idField("webhookId", "Webhook ID"),
				collectionField("updateFields", "Update Fields", "name", "url", "event_type_ids"),
			},
		}).
		op("delete", &Descriptor{
			DisplayName: "Delete",
			Method:      http.MethodDelete,
			Path:        "/webhooks/outgoing/endpoints/{webhookId}",
			Fields:      []Field{idField("webhookId", "Webhook ID")},
		})
}

var webhookEventTypes = []string{
	"contact.created", "contact.updated", "contact.deleted",
	"contact.identified", "contact.unsubscribed",
	"order.created", "order.updated", "order.completed",
	"form_submission.created",
	"courses.enrollment.created",
	"one_time_order.completed", "subscription.activated", "subscription.canceled",
}

func forms(table *dispatchTable) {
	formOption := Field{Name: "formId", DisplayName: "Form Name or ID", Type: FieldOptions, Required: true, LoadOptions: LoaderForms}

	table.resource("form", "Form").
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/forms/{formId}",
			Fields:      []Field{formOption},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/forms",
			List:        true,
			Fields:      listFields(),
		})

	table.resource("formSubmission", "Form Submission").
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/forms/submissions/{submissionId}",
			Fields:      []Field{idField("submissionId", "Submission ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/forms/{formId}/submissions",
			List:        true,
			Fields:      listFields(formOption),
		})
}

func images(table *dispatchTable) {
	table.resource("image", "Image").
		op("create", &Descriptor{
			DisplayName: "Create",
			Method:      http.MethodPost,
			Path:        "/workspaces/{workspaceId}/images",
			Body:        envelope("image", "additionalFields", strParam("name", "name"), strParam("url", "url")),
			Fields: []Field{
				stringField("name", "Name", true),
				stringField("url", "URL", true),
				collectionField("additionalFields", "Additional Fields", "alt_text"),
			},
		}).
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/images/{imageId}",
			Fields:      []Field{idField("imageId", "Image ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/images",
			List:        true,
			Fields:      listFields(),
		}).
		op("update", &Descriptor{
			DisplayName: "Update",
			Method:      http.MethodPut,
			Path:        "/images/{imageId}",
			Body:        envelope("image", "updateFields"),
			Fields: []Field{
				idField("imageId", "Image ID"),
				collectionField("updateFields", "Update Fields", "name", "alt_text"),
			},
		}).
		op("delete", &Descriptor{
			DisplayName: "Delete",
			Method:      http.MethodDelete,
			Path:        "/images/{imageId}",
			Fields:      []Field{idField("imageId", "Image ID")},
		})
}

func segments(table *dispatchTable) {
	table.resource("segment", "Segment").
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        "/segments/{segmentId}",
			Fields:      []Field{idField("segmentId", "Segment ID")},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        "/workspaces/{workspaceId}/segments",
			List:        true,
			Fields:      listFields(),
		})
}

// shippingResource declares the five CRUD operations shared by every
// shipping resource. parent, when set, is the ID parameter that scopes
// create and getAll instead of the workspace.
type shippingResource struct {
	name        string
	displayName string
	bodyKey     string
	idParam     string
	idLabel     string
	itemPath    string
	listPath    string
	parent      *Field
	create      []binding
	createExtra []Field
	updateKeys  []string
}

func shipping(table *dispatchTable) {
	profileOption := Field{
		Name:        "shippingProfileId",
		DisplayName: "Shipping Profile Name or ID",
		Type:        FieldOptions,
		Required:    true,
		LoadOptions: LoaderShippingProfiles,
	}
	zoneID := idField("shippingZoneId", "Shipping Zone ID")

	for _, resource := range []shippingResource{
		{
			name: "shippingProfile", displayName: "Shipping Profile", bodyKey: "shipping_profile",
			idParam: "shippingProfileId", idLabel: "Shipping Profile Name or ID",
			itemPath: "/shipping/profiles/{shippingProfileId}", listPath: "/workspaces/{workspaceId}/shipping/profiles",
			create:     []binding{strParam("name", "name")},
			updateKeys: []string{"name"},
		},
		{
			name: "shippingRate", displayName: "Shipping Rate", bodyKey: "shipping_rate",
			idParam: "shippingRateId", idLabel: "Shipping Rate ID",
			itemPath: "/shipping/rates/{shippingRateId}", listPath: "/shipping/zones/{shippingZoneId}/rates",
			parent:      &zoneID,
			create:      []binding{strParam("name", "name"), numParam("price", "price")},
			createExtra: []Field{{Name: "price", DisplayName: "Price", Type: FieldNumber, Required: true, Default: 0}},
			updateKeys:  []string{"name", "price"},
		},
		{
			name: "shippingZone", displayName: "Shipping Zone", bodyKey: "shipping_zone",
			idParam: "shippingZoneId", idLabel: "Shipping Zone ID",
			itemPath: "/shipping/zones/{shippingZoneId}", listPath: "/shipping/profiles/{shippingProfileId}/zones",
			parent:     &profileOption,
			create:     []binding{strParam("name", "name")},
			updateKeys: []string{"name"},
		},
		{
			name: "shippingPackage", displayName: "Shipping Package", bodyKey: "shipping_package",
			idParam: "shippingPackageId", idLabel: "Shipping Package ID",
			itemPath: "/shipping/packages/{shippingPackageId}", listPath: "/workspaces/{workspaceId}/shipping/packages",
			create:     []binding{strParam("name", "name")},
			updateKeys: []string{"name", "length", "width", "height", "weight"},
		},
	} {
		resource.register(table)
	}
}

func (s shippingResource) register(table *dispatchTable) {
	itemID := idField(s.idParam, s.idLabel)
	if s.idParam == "shippingProfileId" {
		itemID.Type = FieldOptions
		itemID.LoadOptions = LoaderShippingProfiles
	}

	var scoped []Field
	if s.parent != nil {
		scoped = append(scoped, *s.parent)
	}

	createFields := append(append([]Field{}, scoped...), stringField("name", "Name", true))
	createFields = append(createFields, s.createExtra...)

	table.resource(s.name, s.displayName).
		op("create", &Descriptor{
			DisplayName: "Create",
			Method:      http.MethodPost,
			Path:        s.listPath,
			Body:        envelope(s.bodyKey, "", s.create...),
			Fields:      createFields,
		}).
		op("get", &Descriptor{
			DisplayName: "Get",
			Method:      http.MethodGet,
			Path:        s.itemPath,
			Fields:      []Field{itemID},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Method:      http.MethodGet,
			Path:        s.listPath,
			List:        true,
			Fields:      listFields(scoped...),
		}).
		op("update", &Descriptor{
			DisplayName: "Update",
			Method:      http.MethodPut,
			Path:        s.itemPath,
			Body:        envelope(s.bodyKey, "updateFields"),
			Fields:      []Field{itemID, collectionField("updateFields", "Update Fields", s.updateKeys...)},
		}).
		op("delete", &Descriptor{
			DisplayName: "Delete",
			Method:      http.MethodDelete,
			Path:        s.itemPath,
			Fields:      []Field{itemID},
		})
}

func accounts(table *dispatchTable) {
	table.resource("team", "Team").
		op("get", &Descriptor{
			DisplayName: "Get",
			Host:        HostAccounts,
			Method:      http.MethodGet,
			Path:        "/teams/{specificTeamId}",
			Fallbacks:   map[string]string{"specificTeamId": "teamId"},
			Fields: []Field{{
				Name:        "specificTeamId",
				DisplayName: "Team ID",
				Type:        FieldString,
				Default:     "",
				Description: "Leave empty to use the selected team",
			}},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Host:        HostAccounts,
			Method:      http.MethodGet,
			Path:        "/teams",
			List:        true,
			Fields:      listFields(),
		})

	table.resource("workspace", "Workspace").
		op("get", &Descriptor{
			DisplayName: "Get",
			Host:        HostAccounts,
			Method:      http.MethodGet,
			Path:        "/teams/{teamId}/workspaces/{specificWorkspaceId}",
			Fallbacks:   map[string]string{"specificWorkspaceId": "workspaceId"},
			Fields: []Field{{
				Name:        "specificWorkspaceId",
				DisplayName: "Workspace ID",
				Type:        FieldString,
				Default:     "",
				Description: "Leave empty to use the selected workspace",
			}},
		}).
		op("getAll", &Descriptor{
			DisplayName: "Get Many",
			Host:        HostAccounts,
			Method:      http.MethodGet,
			Path:        "/teams/{teamId}/workspaces",
			List:        true,
			Fields:      listFields(),
		})
}
