package fet

import (
	"encoding/xml"
)

const Version = "6.9.0"

// Document is the root element of a FET input file
type Document struct {
	XMLName          xml.Name        `xml:"fet"`
	Version          string          `xml:"version,attr"`
	Institution      string          `xml:"Institution_Name"`
	Comments         string          `xml:"Comments"`
	Days             DaysList        `xml:"Days_List"`
	Hours            HoursList       `xml:"Hours_List"`
	Subjects         []Named         `xml:"Subjects_List>Subject"`
	ActivityTags     []Named         `xml:"Activity_Tags_List>Activity_Tag"`
	Teachers         []Named         `xml:"Teachers_List>Teacher"`
	Students         []Year          `xml:"Students_List>Year"`
	Activities       []Activity      `xml:"Activities_List>Activity"`
	Buildings        []Named         `xml:"Buildings_List>Building"`
	Rooms            []Room          `xml:"Rooms_List>Room"`
	TimeConstraints  ConstraintsList `xml:"Time_Constraints_List"`
	SpaceConstraints ConstraintsList `xml:"Space_Constraints_List"`
}

type Named struct {
	Name string `xml:"Name"`
}

type DaysList struct {
	Number int     `xml:"Number_of_Days"`
	Days   []Named `xml:"Day"`
}

type HoursList struct {
	Number int     `xml:"Number_of_Hours"`
	Hours  []Named `xml:"Hour"`
}

type Year struct {
	Name       string     `xml:"Name"`
	Students   int        `xml:"Number_of_Students"`
	Categories int        `xml:"Number_of_Categories"`
	Separator  string     `xml:"Separator"`
	Category   []Category `xml:"Category"`
	Groups     []Group    `xml:"Group"`
}

type Category struct {
	Number    int      `xml:"Number_of_Divisions"`
	Divisions []string `xml:"Division"`
}

type Group struct {
	Name      string     `xml:"Name"`
	Students  int        `xml:"Number_of_Students"`
	Subgroups []Subgroup `xml:"Subgroup"`
}

type Subgroup struct {
	Name     string `xml:"Name"`
	Students int    `xml:"Number_of_Students"`
}

type Activity struct {
	Teachers      []string `xml:"Teacher"`
	Subject       string   `xml:"Subject"`
	Tags          []string `xml:"Activity_Tag"`
	Students      []string `xml:"Students"`
	Duration      int      `xml:"Duration"`
	TotalDuration int      `xml:"Total_Duration"`
	Id            int      `xml:"Id"`
	GroupId       int      `xml:"Activity_Group_Id"`
	Active        bool     `xml:"Active"`
	Comments      string   `xml:"Comments"`
}

type Room struct {
	Name     string        `xml:"Name"`
	Building string        `xml:"Building"`
	Capacity int           `xml:"Capacity"`
	Virtual  bool          `xml:"Virtual"`
	NumSets  int           `xml:"Number_of_Sets_of_Real_Rooms,omitempty"`
	Sets     []RealRoomSet `xml:"Set_of_Real_Rooms"`
}

type RealRoomSet struct {
	Number int      `xml:"Number_of_Real_Rooms"`
	Rooms  []string `xml:"Real_Room"`
}

// ConstraintsList holds constraint elements of mixed types; each one names its own element
type ConstraintsList struct {
	Constraints []any
}

//** Time constraints

type Weighted struct {
	Weight int `xml:"Weight_Percentage"`
}

type Trailer struct {
	Active   bool   `xml:"Active"`
	Comments string `xml:"Comments"`
}

type Time struct {
	Day  string `xml:"Day"`
	Hour string `xml:"Hour"`
}

type StartingTime struct {
	Day  string `xml:"Preferred_Starting_Day"`
	Hour string `xml:"Preferred_Starting_Hour"`
}

type BasicCompulsoryTime struct {
	XMLName xml.Name `xml:"ConstraintBasicCompulsoryTime"`
	Weighted
	Trailer
}

type BasicCompulsorySpace struct {
	XMLName xml.Name `xml:"ConstraintBasicCompulsorySpace"`
	Weighted
	Trailer
}

type TeacherNotAvailableTimes struct {
	XMLName xml.Name `xml:"ConstraintTeacherNotAvailableTimes"`
	Weighted
	Teacher string `xml:"Teacher"`
	Number  int    `xml:"Number_of_Not_Available_Times"`
	Times   []Time `xml:"Not_Available_Time"`
	Trailer
}

type StudentsSetNotAvailableTimes struct {
	XMLName xml.Name `xml:"ConstraintStudentsSetNotAvailableTimes"`
	Weighted
	Students string `xml:"Students"`
	Number   int    `xml:"Number_of_Not_Available_Times"`
	Times    []Time `xml:"Not_Available_Time"`
	Trailer
}

type TeacherMaxDaysPerWeek struct {
	XMLName xml.Name `xml:"ConstraintTeacherMaxDaysPerWeek"`
	Weighted
	Teacher string `xml:"Teacher_Name"`
	MaxDays int    `xml:"Max_Days_Per_Week"`
	Trailer
}

type StudentsSetMaxDaysPerWeek struct {
	XMLName xml.Name `xml:"ConstraintStudentsSetMaxDaysPerWeek"`
	Weighted
	Students string `xml:"Students"`
	MaxDays  int    `xml:"Max_Days_Per_Week"`
	Trailer
}

type TeacherIntervalMaxDaysPerWeek struct {
	XMLName xml.Name `xml:"ConstraintTeacherIntervalMaxDaysPerWeek"`
	Weighted
	Teacher string `xml:"Teacher"`
	Start   string `xml:"Interval_Start_Hour"`
	End     string `xml:"Interval_End_Hour"` // Empty for the end of the day
	MaxDays int    `xml:"Max_Days_Per_Week"`
	Trailer
}

type StudentsSetIntervalMaxDaysPerWeek struct {
	XMLName xml.Name `xml:"ConstraintStudentsSetIntervalMaxDaysPerWeek"`
	Weighted
	Students string `xml:"Students"`
	Start    string `xml:"Interval_Start_Hour"`
	End      string `xml:"Interval_End_Hour"`
	MaxDays  int    `xml:"Max_Days_Per_Week"`
	Trailer
}

type TeacherMaxHoursDaily struct {
	XMLName xml.Name `xml:"ConstraintTeacherMaxHoursDaily"`
	Weighted
	Teacher  string `xml:"Teacher_Name"`
	MaxHours int    `xml:"Maximum_Hours_Daily"`
	Trailer
}

type StudentsSetMaxHoursDaily struct {
	XMLName xml.Name `xml:"ConstraintStudentsSetMaxHoursDaily"`
	Weighted
	MaxHours int    `xml:"Maximum_Hours_Daily"`
	Students string `xml:"Students"`
	Trailer
}

type TeacherMinHoursDaily struct {
	XMLName xml.Name `xml:"ConstraintTeacherMinHoursDaily"`
	Weighted
	Teacher        string `xml:"Teacher_Name"`
	MinHours       int    `xml:"Minimum_Hours_Daily"`
	AllowEmptyDays bool   `xml:"Allow_Empty_Days"`
	Trailer
}

type StudentsSetMinHoursDaily struct {
	XMLName xml.Name `xml:"ConstraintStudentsSetMinHoursDaily"`
	Weighted
	MinHours       int    `xml:"Minimum_Hours_Daily"`
	Students       string `xml:"Students"`
	AllowEmptyDays bool   `xml:"Allow_Empty_Days"`
	Trailer
}

type TeacherMaxGapsPerDay struct {
	XMLName xml.Name `xml:"ConstraintTeacherMaxGapsPerDay"`
	Weighted
	Teacher string `xml:"Teacher_Name"`
	MaxGaps int    `xml:"Max_Gaps"`
	Trailer
}

type StudentsSetMaxGapsPerDay struct {
	XMLName xml.Name `xml:"ConstraintStudentsSetMaxGapsPerDay"`
	Weighted
	MaxGaps  int    `xml:"Max_Gaps"`
	Students string `xml:"Students"`
	Trailer
}

type TeacherMaxGapsPerWeek struct {
	XMLName xml.Name `xml:"ConstraintTeacherMaxGapsPerWeek"`
	Weighted
	Teacher string `xml:"Teacher_Name"`
	MaxGaps int    `xml:"Max_Gaps"`
	Trailer
}

type StudentsSetMaxGapsPerWeek struct {
	XMLName xml.Name `xml:"ConstraintStudentsSetMaxGapsPerWeek"`
	Weighted
	MaxGaps  int    `xml:"Max_Gaps"`
	Students string `xml:"Students"`
	Trailer
}

type StudentsSetEarlyMaxBeginningsAtSecondHour struct {
	XMLName xml.Name `xml:"ConstraintStudentsSetEarlyMaxBeginningsAtSecondHour"`
	Weighted
	MaxBeginnings int    `xml:"Max_Beginnings_At_Second_Hour"`
	Students      string `xml:"Students"`
	Trailer
}

type MinDaysBetweenActivities struct {
	XMLName xml.Name `xml:"ConstraintMinDaysBetweenActivities"`
	Weighted
	ConsecutiveIfSameDay bool  `xml:"Consecutive_If_Same_Day"`
	Number               int   `xml:"Number_of_Activities"`
	Activities           []int `xml:"Activity_Id"`
	MinDays              int   `xml:"MinDays"`
	Trailer
}

type ActivitiesPreferredStartingTimes struct {
	XMLName xml.Name `xml:"ConstraintActivitiesPreferredStartingTimes"`
	Weighted
	Subject string         `xml:"Subject_Name"`
	Number  int            `xml:"Number_of_Preferred_Starting_Times"`
	Times   []StartingTime `xml:"Preferred_Starting_Time"`
	Trailer
}

type ActivitiesEndStudentsDay struct {
	XMLName xml.Name `xml:"ConstraintActivitiesEndStudentsDay"`
	Weighted
	Subject string `xml:"Subject_Name"`
	Trailer
}

//** Space constraints

type ActivityPreferredRoom struct {
	XMLName xml.Name `xml:"ConstraintActivityPreferredRoom"`
	Weighted
	Activity          int    `xml:"Activity_Id"`
	Room              string `xml:"Room"`
	PermanentlyLocked bool   `xml:"Permanently_Locked"`
	Trailer
}

type ActivityPreferredRooms struct {
	XMLName xml.Name `xml:"ConstraintActivityPreferredRooms"`
	Weighted
	Activity int      `xml:"Activity_Id"`
	Number   int      `xml:"Number_of_Preferred_Rooms"`
	Rooms    []string `xml:"Preferred_Room"`
	Trailer
}

// Marshal renders the document with an XML declaration, ready to be written to a .fet file
func (document *Document) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
