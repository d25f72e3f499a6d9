package mapper

import "go-lms-bridge/internal/features/capability"

// courseMappings is the canonical/legacy contract for courses. Order
// here is the order settings payloads and exports enumerate fields in.
var courseMappings = []*MappingEntry{
	{
		Path:         "course_level",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_course_level",
		Targets:      []LegacyTarget{{Key: "_tutor_course_level"}},
		Default:      "all_levels",
	},
	{
		Path:         "is_public_course",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_is_public_course",
		Targets:      []LegacyTarget{{Key: "_tutor_is_public_course"}},
		Default:      false,
		Forward:      YesNoForward,
		Reverse:      YesNoReverse,
	},
	{
		Path:         "enable_qna",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_enable_qna",
		Targets:      []LegacyTarget{{Key: "_tutor_enable_qa"}},
		Default:      true,
		Forward:      YesNoForward,
		Reverse:      YesNoReverse,
	},
	{
		Path:         "course_duration.hours",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_course_duration_hours",
		Targets:      []LegacyTarget{{Key: "hours", Bag: "_course_duration"}},
		Default:      0,
		Forward:      IntForward,
		Reverse:      IntReverse,
	},
	{
		Path:         "course_duration.minutes",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_course_duration_minutes",
		Targets:      []LegacyTarget{{Key: "minutes", Bag: "_course_duration"}},
		Default:      0,
		Forward:      IntForward,
		Reverse:      IntReverse,
	},
	{
		// Lives only inside the legacy settings bag; the canonical view
		// is assembled from there on read.
		Path:    "maximum_students",
		Mode:    StorageAggregate,
		Targets: []LegacyTarget{{Key: "maximum_students", Bag: "_tutor_course_settings"}},
		Default: nil,
		Forward: UnlimitedForward,
		Reverse: UnlimitedReverse,
	},
	{
		// One canonical flag, two legacy mirrors with different
		// vocabularies.
		Path:         "enrollment.pause",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_enrollment_pause",
		Targets: []LegacyTarget{
			{Key: "_tutor_pause_enrollment"},
			{Key: "_tutor_enrollment_status", Forward: PauseOpenForward, Reverse: PauseOpenReverse},
		},
		Default: false,
		Forward: YesNoForward,
		Reverse: YesNoReverse,
	},
	{
		Path:         "pricing.type",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_pricing_type",
		Targets:      []LegacyTarget{{Key: "_tutor_course_price_type"}},
		Default:      "free",
	},
	{
		Path:         "pricing.price",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_pricing_price",
		Targets:      []LegacyTarget{{Key: "_tutor_course_price"}},
		Default:      float64(0),
		Forward:      PriceForward,
		Reverse:      PriceReverse,
	},
	{
		Path:         "pricing.sale_price",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_pricing_sale_price",
		Targets:      []LegacyTarget{{Key: "_tutor_course_sale_price"}},
		Capability:   capability.CapabilityWooCommerce,
		Default:      float64(0),
		Forward:      PriceForward,
		Reverse:      PriceReverse,
	},
	{
		Path:         "intro_video.source",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_intro_video_source",
		Targets:      []LegacyTarget{{Key: "source", Bag: "_video"}},
		Default:      "",
	},
	{
		Path:         "intro_video.url",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_intro_video_url",
		Targets:      []LegacyTarget{{Key: "source_video_url", Bag: "_video"}},
		Default:      "",
	},
	{
		Path:         "attachments",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_attachments",
		Targets:      []LegacyTarget{{Key: "_tutor_attachments"}},
		Default:      []interface{}{},
	},
}
