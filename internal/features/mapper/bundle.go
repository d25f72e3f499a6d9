package mapper

import "go-lms-bridge/internal/features/capability"

var bundleMappings = []*MappingEntry{
	{
		Path:         "ribbon_type",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_ribbon_type",
		Targets:      []LegacyTarget{{Key: "_tutor_bundle_ribbon_type"}},
		Default:      "none",
	},
	{
		Path:         "pricing.price",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_pricing_price",
		Targets:      []LegacyTarget{{Key: "price", Bag: "_tutor_bundle_settings"}},
		Capability:   capability.CapabilityCourseBundle,
		Default:      float64(0),
		Forward:      PriceForward,
		Reverse:      PriceReverse,
	},
	{
		Path:         "pricing.sale_price",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_pricing_sale_price",
		Targets:      []LegacyTarget{{Key: "sale_price", Bag: "_tutor_bundle_settings"}},
		Capability:   capability.CapabilityCourseBundle,
		Default:      float64(0),
		Forward:      PriceForward,
		Reverse:      PriceReverse,
	},
	{
		// Membership is derived data with no legacy mirror; it only
		// appears in the assembled settings view.
		Path:         "course_ids",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_course_ids",
		Targets:      nil,
		Default:      []interface{}{},
	},
}
