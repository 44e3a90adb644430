package apierrors

const (
	MsgInvalidPayload     = "invalidPayload"
	MsgInvalidPostID      = "invalidPostID"
	MsgInvalidApplicantID = "invalidApplicantID"
	MsgInvalidProjectID   = "invalidProjectID"
	MsgInvalidPhaseID     = "invalidPhaseID"
	MsgInvalidTodoID      = "invalidTodoID"
	MsgInvalidFilter      = "invalidFilter"
	MsgInvalidOrder       = "invalidOrder"
	MsgValidationFailed   = "validationFailed"
	MsgUnauthorized       = "unauthorized"
	MsgForbidden          = "forbidden"
	MsgPostNotFound       = "postNotFound"
	MsgApplicantNotFound  = "applicantNotFound"
	MsgProjectNotFound    = "projectNotFound"
	MsgPhaseNotFound      = "phaseNotFound"
	MsgTodoNotFound       = "todoNotFound"
	MsgFreelancerNotFound = "freelancerNotFound"
	MsgPhasesLocked       = "phasesLocked"
	MsgFailListPosts      = "failListPosts"
	MsgFailGetPost        = "failGetPost"
	MsgFailCreatePost     = "failCreatePost"
	MsgFailUpdatePost     = "failUpdatePost"
	MsgFailDeletePost     = "failDeletePost"
	MsgFailEditSession    = "failEditSession"
	MsgFailDiscardEdit    = "failDiscardEdit"
	MsgFailApply          = "failApply"
	MsgFailWithdraw       = "failWithdraw"
	MsgFailCreateProject  = "failCreateProject"
	MsgFailGetProject     = "failGetProject"
	MsgFailListProjects   = "failListProjects"
	MsgFailLockPhases     = "failLockPhases"
	MsgFailSavePhase      = "failSavePhase"
	MsgFailDeletePhase    = "failDeletePhase"
	MsgFailSaveTodo       = "failSaveTodo"
	MsgFailDeleteTodo     = "failDeleteTodo"
)
