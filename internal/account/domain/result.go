package domain

// Actions reported in every Result.
const (
	ActionRegister = "register"
	ActionVerify   = "verify"
	ActionLogin    = "login"
)

// Business outcome messages. These are part of the wire contract.
const (
	MsgLoginExist    = "login exist"
	MsgEmailExist    = "email exist"
	MsgInternalError = "internal error"
	MsgLinkNotExist  = "link not exist"
	MsgWrongLogin    = "wrong login"
	MsgWrongPassword = "wrong password"
	MsgNotVerified   = "not verified"
)

// Result is the structured outcome of register, verify and login. A false
// Success is a normal business state, not a fault.
type Result struct {
	Action  string `json:"action"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Ok(action, message string) Result {
	return Result{Action: action, Success: true, Message: message}
}

func Fail(action, message string) Result {
	return Result{Action: action, Success: false, Message: message}
}
