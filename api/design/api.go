// Package design describes the law firm HTTP API in the goa DSL. The
// handlers in internal/server implement this contract.
package design

import (
	. "goa.design/goa/v3/dsl"
)

var _ = API("lawfirm", func() {
	Title("Law Firm API")
	Description("Public website API for practice areas, lawyers, case results, testimonials and contact messages")
	Version("1.0.0")
	Server("api", func() {
		Host("localhost", func() {
			URI("http://localhost:8000")
		})
	})

	Error("not_found", ErrorResult, "Entity does not exist")
	Error("bad_request", ErrorResult, "Malformed request or dangling reference")
	Error("conflict", ErrorResult, "Unique constraint violated")
	HTTP(func() {
		Response("not_found", StatusNotFound)
		Response("bad_request", StatusBadRequest)
		Response("conflict", StatusConflict)
	})
})

// Health
var _ = Service("health", func() {
	Description("Liveness and readiness probes")

	Method("banner", func() {
		Result(BannerResult)
		HTTP(func() {
			GET("/")
			Response(StatusOK)
		})
	})

	Method("check", func() {
		Result(HealthResult)
		HTTP(func() {
			GET("/health")
			Response(StatusOK)
		})
	})

	Method("ready", func() {
		Description("Reports ok only when the database answers")
		Result(HealthResult)
		HTTP(func() {
			GET("/health/ready")
			Response(StatusOK)
		})
	})
})

var BannerResult = Type("BannerResult", func() {
	Attribute("message", String, func() {
		Example("Law Firm API is running")
	})
	Attribute("version", String, func() {
		Example("1.0.0")
	})
	Required("message", "version")
})

var HealthResult = Type("HealthResult", func() {
	Attribute("status", String, func() {
		Example("ok")
	})
	Required("status")
})

var IDPayload = Type("IDPayload", func() {
	Attribute("id", UInt, "Entity ID", func() {
		Minimum(1)
	})
	Required("id")
})

// Practice areas
var _ = Service("practice_areas", func() {
	Description("Legal practice areas, ordered by name")

	Method("list", func() {
		Result(ArrayOf(PracticeArea))
		HTTP(func() {
			GET("/practice-areas")
			Response(StatusOK)
		})
	})

	Method("show", func() {
		Payload(IDPayload)
		Result(PracticeArea)
		HTTP(func() {
			GET("/practice-areas/{id}")
			Response(StatusOK)
		})
	})

	Method("create", func() {
		Payload(func() {
			Extend(PracticeAreaFields)
			Required("name")
		})
		Result(PracticeArea)
		HTTP(func() {
			POST("/practice-areas")
			Response(StatusCreated)
		})
	})

	Method("update", func() {
		Description("Partial update; explicit null clears the description")
		Payload(func() {
			Extend(IDPayload)
			Extend(PracticeAreaFields)
		})
		Result(PracticeArea)
		HTTP(func() {
			PUT("/practice-areas/{id}")
			Response(StatusOK)
		})
	})

	Method("delete", func() {
		Description("Deletes the area with its case results and lawyer links")
		Payload(IDPayload)
		HTTP(func() {
			DELETE("/practice-areas/{id}")
			Response(StatusNoContent)
		})
	})
})

var PracticeAreaFields = Type("PracticeAreaFields", func() {
	Attribute("name", String, func() {
		MinLength(1)
		MaxLength(255)
		Example("Family Law")
	})
	Attribute("description", String)
})

var PracticeArea = Type("PracticeArea", func() {
	Attribute("id", UInt)
	Extend(PracticeAreaFields)
	Required("id", "name")
})

// Lawyers
var _ = Service("lawyers", func() {
	Description("Lawyer profiles with their practice areas")

	Method("list", func() {
		Payload(func() {
			Attribute("practiceAreaId", UInt, "Only lawyers linked to this practice area")
			Attribute("search", String, "Case-insensitive match on name or bio")
		})
		Result(ArrayOf(Lawyer))
		HTTP(func() {
			GET("/lawyers")
			Param("practiceAreaId")
			Param("search")
			Response(StatusOK)
		})
	})

	Method("show", func() {
		Payload(IDPayload)
		Result(LawyerDetail)
		HTTP(func() {
			GET("/lawyers/{id}")
			Response(StatusOK)
		})
	})

	Method("create", func() {
		Description("Unknown practice area ids are ignored")
		Payload(func() {
			Extend(LawyerFields)
			Required("full_name")
		})
		Result(Lawyer)
		HTTP(func() {
			POST("/lawyers")
			Response(StatusCreated)
		})
	})

	Method("update", func() {
		Description("Partial update; practice_area_ids replaces the whole link set when present")
		Payload(func() {
			Extend(IDPayload)
			Extend(LawyerFields)
		})
		Result(Lawyer)
		HTTP(func() {
			PUT("/lawyers/{id}")
			Response(StatusOK)
		})
	})

	Method("delete", func() {
		Description("Deletes the lawyer with their case results and testimonials")
		Payload(IDPayload)
		HTTP(func() {
			DELETE("/lawyers/{id}")
			Response(StatusNoContent)
		})
	})
})

var LawyerFields = Type("LawyerFields", func() {
	Attribute("full_name", String, func() {
		MinLength(1)
		MaxLength(255)
		Example("Deniz Yıldız")
	})
	Attribute("title", String, func() {
		MaxLength(255)
	})
	Attribute("bio", String)
	Attribute("email", String, func() {
		Format(FormatEmail)
	})
	Attribute("phone", String, func() {
		MaxLength(50)
	})
	Attribute("experience_years", Int, func() {
		Minimum(0)
	})
	Attribute("photo_url", String, func() {
		MaxLength(512)
	})
	Attribute("languages", ArrayOf(String), func() {
		Example([]string{"tr", "en"})
	})
	Attribute("practice_area_ids", ArrayOf(UInt))
})

var Lawyer = Type("Lawyer", func() {
	Attribute("id", UInt)
	Attribute("full_name", String)
	Attribute("title", String)
	Attribute("bio", String)
	Attribute("email", String)
	Attribute("phone", String)
	Attribute("experience_years", Int)
	Attribute("photo_url", String)
	Attribute("languages", ArrayOf(String))
	Attribute("practice_areas", ArrayOf(PracticeArea))
	Required("id", "full_name", "languages", "practice_areas")
})

var LawyerDetail = Type("LawyerDetail", func() {
	Extend(Lawyer)
	Attribute("case_results", ArrayOf(CaseResult))
	Attribute("testimonials", ArrayOf(Testimonial))
	Required("case_results", "testimonials")
})

// Case results
var _ = Service("case_results", func() {
	Description("Case results, most recently resolved first")

	Method("list", func() {
		Result(ArrayOf(CaseResult))
		HTTP(func() {
			GET("/case-results")
			Response(StatusOK)
		})
	})

	Method("show", func() {
		Payload(IDPayload)
		Result(CaseResult)
		HTTP(func() {
			GET("/case-results/{id}")
			Response(StatusOK)
		})
	})

	Method("create", func() {
		Payload(func() {
			Extend(CaseResultFields)
			Required("title", "lawyer_id")
		})
		Result(CaseResult)
		HTTP(func() {
			POST("/case-results")
			Response(StatusCreated)
		})
	})

	Method("update", func() {
		Payload(func() {
			Extend(IDPayload)
			Extend(CaseResultFields)
		})
		Result(CaseResult)
		HTTP(func() {
			PUT("/case-results/{id}")
			Response(StatusOK)
		})
	})

	Method("delete", func() {
		Payload(IDPayload)
		HTTP(func() {
			DELETE("/case-results/{id}")
			Response(StatusNoContent)
		})
	})
})

var CaseResultFields = Type("CaseResultFields", func() {
	Attribute("title", String, func() {
		MinLength(1)
		MaxLength(255)
	})
	Attribute("summary", String)
	Attribute("outcome", String)
	Attribute("resolved_on", String, func() {
		Format(FormatDate)
		Example("2024-03-15")
	})
	Attribute("lawyer_id", UInt)
	Attribute("practice_area_id", UInt)
})

var CaseResult = Type("CaseResult", func() {
	Attribute("id", UInt)
	Extend(CaseResultFields)
	Attribute("lawyer_name", String, "Current name of the lawyer")
	Attribute("practice_area_name", String, "Current name of the practice area")
	Required("id", "title", "lawyer_id")
})

// Testimonials
var _ = Service("testimonials", func() {
	Description("Client testimonials")

	Method("list", func() {
		Result(ArrayOf(Testimonial))
		HTTP(func() {
			GET("/testimonials")
			Response(StatusOK)
		})
	})

	Method("show", func() {
		Payload(IDPayload)
		Result(Testimonial)
		HTTP(func() {
			GET("/testimonials/{id}")
			Response(StatusOK)
		})
	})

	Method("create", func() {
		Payload(func() {
			Extend(TestimonialFields)
			Required("client_name", "content", "lawyer_id")
		})
		Result(Testimonial)
		HTTP(func() {
			POST("/testimonials")
			Response(StatusCreated)
		})
	})

	Method("update", func() {
		Payload(func() {
			Extend(IDPayload)
			Extend(TestimonialFields)
		})
		Result(Testimonial)
		HTTP(func() {
			PUT("/testimonials/{id}")
			Response(StatusOK)
		})
	})

	Method("delete", func() {
		Payload(IDPayload)
		HTTP(func() {
			DELETE("/testimonials/{id}")
			Response(StatusNoContent)
		})
	})
})

var TestimonialFields = Type("TestimonialFields", func() {
	Attribute("client_name", String, func() {
		MinLength(1)
		MaxLength(255)
	})
	Attribute("content", String, func() {
		MinLength(1)
	})
	Attribute("rating", Int, func() {
		Minimum(1)
		Maximum(5)
	})
	Attribute("lawyer_id", UInt)
})

var Testimonial = Type("Testimonial", func() {
	Attribute("id", UInt)
	Extend(TestimonialFields)
	Attribute("lawyer_name", String, "Current name of the lawyer")
	Required("id", "client_name", "content", "lawyer_id")
})

// Contact messages
var _ = Service("contact_messages", func() {
	Description("Messages sent through the website contact form")

	Method("list", func() {
		Description("Newest first")
		Result(ArrayOf(ContactMessage))
		HTTP(func() {
			GET("/contact-messages")
			Response(StatusOK)
		})
	})

	Method("create", func() {
		Description("Stores the message and notifies the office by email when configured")
		Payload(ContactMessageFields)
		Result(ContactMessage)
		HTTP(func() {
			POST("/contact-messages")
			Response(StatusCreated)
		})
	})
})

var ContactMessageFields = Type("ContactMessageFields", func() {
	Attribute("full_name", String, func() {
		MinLength(1)
		MaxLength(255)
	})
	Attribute("email", String, func() {
		Format(FormatEmail)
	})
	Attribute("phone", String, func() {
		MaxLength(50)
	})
	Attribute("preferred_contact_method", String, func() {
		MaxLength(50)
		Example("phone")
	})
	Attribute("message", String, func() {
		MinLength(1)
	})
	Required("full_name", "email", "message")
})

var ContactMessage = Type("ContactMessage", func() {
	Attribute("id", UInt)
	Extend(ContactMessageFields)
	Attribute("created_at", String, func() {
		Format(FormatDateTime)
	})
	Required("id", "created_at")
})
