package app

// Constants
const (
	DefaultOutputFile = "output.ics"
	FilePermissions   = 0644
	TmpSuffix         = ".tmp"

	// Error messages
	ErrInvalidFormat        = "Invalid format"
	ErrInternalServer       = "Internal server error"
	ErrInvalidReminder      = "Invalid reminder duration"
	ErrFailedToGenerateJSON = "Failed to generate JSON"
	ErrFailedToReload       = "Failed to reload schedule"

	// ICS constants
	ICSProductID = "-//PUK Piaseczno//Harmonogram//PL"
	ICSTimezone  = "Europe/Warsaw"
	ICSDomain    = "harmonogram.piaseczno.pl"

	// Calendar display name used when none is configured
	DefaultCalendarName = "Harmonogram wywozu odpadów"

	// Refresh interval hint for subscription feeds
	SubscriptionTTL = "PT1H"
)

// Export formats
const (
	FormatICS  = "ics"
	FormatCSV  = "csv"
	FormatJSON = "json"
)
