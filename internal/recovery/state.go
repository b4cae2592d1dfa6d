// ABOUTME: States of the password recovery flow
// ABOUTME: Each state carries only the data collected so far

package recovery

// Step identifies a recovery state without its payload
type Step int

const (
	StepEmail Step = iota
	StepOTP
	StepReset
	StepDone
)

// StepCount is the number of steps shown in progress indicators
const StepCount = 4

func (s Step) String() string {
	switch s {
	case StepEmail:
		return "email"
	case StepOTP:
		return "otp"
	case StepReset:
		return "reset"
	case StepDone:
		return "success"
	default:
		return "unknown"
	}
}

// Title is the heading shown for the step
func (s Step) Title() string {
	switch s {
	case StepEmail:
		return "Forgot Password"
	case StepOTP:
		return "Verify OTP"
	case StepReset:
		return "Reset Password"
	case StepDone:
		return "Password Reset Successful"
	default:
		return ""
	}
}

// State is one of EmailStep, OTPStep, ResetStep, or DoneStep
type State interface {
	Step() Step
	isState()
}

// EmailStep collects the account email
type EmailStep struct{}

// OTPStep holds the email a code was sent to
type OTPStep struct {
	Email string
}

// ResetStep holds the email and the verified code
type ResetStep struct {
	Email string
	OTP   string
}

// DoneStep is terminal
type DoneStep struct{}

func (EmailStep) Step() Step { return StepEmail }
func (OTPStep) Step() Step   { return StepOTP }
func (ResetStep) Step() Step { return StepReset }
func (DoneStep) Step() Step  { return StepDone }

func (EmailStep) isState() {}
func (OTPStep) isState()   {}
func (ResetStep) isState() {}
func (DoneStep) isState()  {}
