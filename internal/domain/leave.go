package domain

type LeaveType string

const (
	LeaveSick         LeaveType = "sick"
	LeaveCasual       LeaveType = "casual"
	LeaveMedical      LeaveType = "medical"
	LeaveWorkFromHome LeaveType = "work_from_home"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveSick, LeaveCasual, LeaveMedical, LeaveWorkFromHome:
		return true
	}
	return false
}

const DateLayout = "2006-01-02"
