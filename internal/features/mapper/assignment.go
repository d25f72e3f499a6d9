package mapper

// Assignment settings all live inside the single legacy
// "assignment_option" bag, except attachments.
var assignmentMappings = []*MappingEntry{
	{
		Path:         "total_points",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_total_points",
		Targets:      []LegacyTarget{{Key: "total_mark", Bag: "assignment_option"}},
		Default:      10,
		Forward:      IntForward,
		Reverse:      IntReverse,
	},
	{
		Path:         "pass_points",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_pass_points",
		Targets:      []LegacyTarget{{Key: "pass_mark", Bag: "assignment_option"}},
		Default:      5,
		Forward:      IntForward,
		Reverse:      IntReverse,
	},
	{
		// Zero means no deadline.
		Path:         "deadline.value",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_deadline_value",
		Targets:      []LegacyTarget{{Key: "time_duration_value", Bag: "assignment_option"}},
		Default:      0,
		Forward:      IntForward,
		Reverse:      IntReverse,
	},
	{
		Path:         "deadline.unit",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_deadline_unit",
		Targets:      []LegacyTarget{{Key: "time_duration_unit", Bag: "assignment_option"}},
		Default:      "hours",
	},
	{
		Path:         "upload_files_limit",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_upload_files_limit",
		Targets:      []LegacyTarget{{Key: "upload_files_limit", Bag: "assignment_option"}},
		Default:      nil,
		Forward:      UnlimitedForward,
		Reverse:      UnlimitedReverse,
	},
	{
		Path:         "upload_file_size_limit",
		Mode:         StorageDedicated,
		CanonicalKey: "_lms_upload_file_size_limit",
		Targets:      []LegacyTarget{{Key: "upload_file_size_limit", Bag: "assignment_option"}},
		Default:      2,
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
