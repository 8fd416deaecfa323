package instructions

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed texts/*.md
var textsFS embed.FS

// text loads an embedded policy text by file name. The trailing newline the
// files carry is trimmed so the texts splice cleanly into prompt templates.
func text(name string) string {
	b, err := textsFS.ReadFile("texts/" + name)
	if err != nil {
		panic(fmt.Sprintf("instructions: embedded text %s: %v", name, err))
	}

	return strings.TrimSpace(string(b))
}

// Shared policy texts.
var (
	// MainPolicy is the complete business operations policy: domain basics,
	// customer lookup, billing, suspension, refueling, plan changes and
	// roaming rules.
	MainPolicy = text("main_policy.md")

	// DeviceActionsReference lists every diagnostic and fix action a
	// customer can perform on their device.
	DeviceActionsReference = text("device_actions_reference.md")

	// BriefBasePolicy is the condensed base policy used by the compact
	// prompt variant.
	BriefBasePolicy = text("brief_base_policy.md")

	// UserDeviceCapabilities is the condensed device action list used by
	// the compact prompt variant.
	UserDeviceCapabilities = text("user_device_capabilities.md")
)

// Specialist identities. The infrastructure and application identities serve
// the two lane split; the service, mobile data and MMS identities serve the
// three lane split.
var (
	InfrastructureAgentIdentity = text("infrastructure_identity.md")
	ApplicationAgentIdentity    = text("application_identity.md")
	ServiceAgentIdentity        = text("service_identity.md")
	MobileDataAgentIdentity     = text("mobile_data_identity.md")
	MMSAgentIdentity            = text("mms_identity.md")
)

// Troubleshooting guides embedded into specialist preambles. The application
// lane combines the mobile data and MMS guides.
var (
	ServiceTroubleshootingGuide    = text("service_guide.md")
	MobileDataTroubleshootingGuide = text("mobile_data_guide.md")
	MMSTroubleshootingGuide        = text("mms_guide.md")
)

// Specialized policies for the compact prompt variant, which folds the
// troubleshooting procedure and the relevant business rules into one text
// per lane.
var (
	ServiceIssuePolicy    = text("service_policy.md")
	MobileDataIssuePolicy = text("mobile_data_policy.md")
	MMSIssuePolicy        = text("mms_policy.md")
)

// BasePolicy returns the full policy foundation every specialist receives:
// the business operations policy followed by the device actions reference.
func BasePolicy() string {
	return MainPolicy + "\n\n" + DeviceActionsReference
}
