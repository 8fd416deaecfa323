package instructions

import "fmt"

// SpecialistInstruction is the turn discipline preamble for routed
// specialists.
const SpecialistInstruction = `You are a specialized support agent.
In each turn you can either:
- Send a message to the user.
- Make a tool call.
You cannot do both at the same time.

Try to be helpful and always follow the policy. Always make sure you generate valid JSON only.`

// TechnicalSupportInstruction is the turn discipline preamble for the
// compact prompt variant.
const TechnicalSupportInstruction = `You are a specialized customer service agent for telecom technical support.
In each turn you can either:
- Send a message to the user.
- Make a tool call.
You cannot do both at the same time.

Try to be helpful and always follow the policy. Always make sure you generate valid JSON only.`

const specialistPromptTemplate = `<instructions>
%s
</instructions>

<agent_identity>
%s
</agent_identity>

<policy>
%s
</policy>

<specialized_troubleshooting_guide>
%s
</specialized_troubleshooting_guide>`

const technicalSupportPromptTemplate = `<instructions>
%s
</instructions>

<base_policy>
%s
</base_policy>

<specialized_policy>
%s
</specialized_policy>

<user_device_capabilities>
%s
</user_device_capabilities>`

// SpecialistSystemPrompt assembles a specialist preamble from an identity
// and a troubleshooting guide. Every specialist receives the complete base
// policy; only identity and guide vary per lane.
func SpecialistSystemPrompt(identity, guide string) string {
	return fmt.Sprintf(specialistPromptTemplate, SpecialistInstruction, identity, BasePolicy(), guide)
}

// TechnicalSupportSystemPrompt assembles the compact preamble variant from a
// specialized policy. The brief base policy and device capability list are
// shared across lanes.
func TechnicalSupportSystemPrompt(policy string) string {
	return fmt.Sprintf(technicalSupportPromptTemplate, TechnicalSupportInstruction, BriefBasePolicy, policy, UserDeviceCapabilities)
}
