package mapper

import "go-lms-bridge/internal/features/capability"

var lessonMappings = []*MappingEntry{
	{
		Path:         "video.source",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_video_source",
		Targets:      []LegacyTarget{{Key: "source", Bag: "_video"}},
		Default:      "",
	},
	{
		Path:         "video.url",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_video_url",
		Targets:      []LegacyTarget{{Key: "source_video_url", Bag: "_video"}},
		Default:      "",
	},
	{
		Path:         "video.runtime.hours",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_video_runtime_hours",
		Targets:      []LegacyTarget{{Key: "runtime_hours", Bag: "_video"}},
		Default:      0,
		Forward:      IntForward,
		Reverse:      IntReverse,
	},
	{
		Path:         "video.runtime.minutes",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_video_runtime_minutes",
		Targets:      []LegacyTarget{{Key: "runtime_minutes", Bag: "_video"}},
		Default:      0,
		Forward:      IntForward,
		Reverse:      IntReverse,
	},
	{
		Path:         "video.runtime.seconds",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_video_runtime_seconds",
		Targets:      []LegacyTarget{{Key: "runtime_seconds", Bag: "_video"}},
		Default:      0,
		Forward:      IntForward,
		Reverse:      IntReverse,
	},
	{
		Path:         "lesson_preview.enabled",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_lesson_preview_enabled",
		Targets:      []LegacyTarget{{Key: "_is_preview"}},
		Capability:   capability.CapabilityPreview,
		Default:      false,
		Forward:      YesNoForward,
		Reverse:      YesNoReverse,
	},
	{
		Path:         "content_drip.unlock_date",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_content_drip_unlock_date",
		Targets:      []LegacyTarget{{Key: "unlock_date", Bag: "_content_drip_settings"}},
		Capability:   capability.CapabilityContentDrip,
		Default:      "",
	},
	{
		Path:         "content_drip.after_days",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_content_drip_after_days",
		Targets:      []LegacyTarget{{Key: "after_xdays_of_enroll", Bag: "_content_drip_settings"}},
		Capability:   capability.CapabilityContentDrip,
		Default:      0,
		Forward:      IntForward,
		Reverse:      IntReverse,
	},
	{
		Path:         "attachments",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_attachments",
		Targets:      []LegacyTarget{{Key: "_tutor_attachments"}},
		Default:      []interface{}{},
	},
}
