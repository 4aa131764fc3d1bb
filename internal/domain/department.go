package domain

// Department is one of the fixed campus departments tickets are routed to.
type Department string

const (
	DepartmentITSupport    Department = "IT Support"
	DepartmentFacilities   Department = "Facilities"
	DepartmentAcademic     Department = "Academic"
	DepartmentFinancialAid Department = "Financial Aid"
	DepartmentHousing      Department = "Housing"
	DepartmentOther        Department = "Other"
)

// Departments lists every assignable department.
var Departments = []Department{
	DepartmentITSupport,
	DepartmentFacilities,
	DepartmentAcademic,
	DepartmentFinancialAid,
	DepartmentHousing,
	DepartmentOther,
}

// ValidDepartment reports whether d belongs to the fixed set.
func ValidDepartment(d Department) bool {
	for _, candidate := range Departments {
		if candidate == d {
			return true
		}
	}
	return false
}
