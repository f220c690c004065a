package event

type CrewHired struct {
	Header
	Name    string `json:"name"`
	Faction string `json:"faction,omitempty"`
	Price   int64  `json:"price"`
	Rating  Rating `json:"rating"`
}

func (CrewHired) Kind() Kind { return KindCrewHired }

type CrewFired struct {
	Header
	Name string `json:"name"`
}

func (CrewFired) Kind() Kind { return KindCrewFired }

type CrewAssigned struct {
	Header
	Name string `json:"name"`
	Role string `json:"role"`
}

func (CrewAssigned) Kind() Kind { return KindCrewAssigned }

// CrewJoined fires when the commander joins another commander's crew.
type CrewJoined struct {
	Header
	Captain string `json:"captain"`
}

func (CrewJoined) Kind() Kind { return KindCrewJoined }

type CrewLeft struct {
	Header
	Captain string `json:"captain"`
}

func (CrewLeft) Kind() Kind { return KindCrewLeft }

type CrewRoleChanged struct {
	Header
	Role string `json:"role"`
}

func (CrewRoleChanged) Kind() Kind { return KindCrewRoleChanged }

type CrewMemberJoined struct {
	Header
	Member string `json:"member"`
}

func (CrewMemberJoined) Kind() Kind { return KindCrewMemberJoined }

type CrewMemberLeft struct {
	Header
	Member string `json:"member"`
}

func (CrewMemberLeft) Kind() Kind { return KindCrewMemberLeft }

type CrewMemberRoleChanged struct {
	Header
	Member string `json:"member"`
	Role   string `json:"role"`
}

func (CrewMemberRoleChanged) Kind() Kind { return KindCrewMemberRoleChanged }

type CrewMemberRemoved struct {
	Header
	Member string `json:"member"`
}

func (CrewMemberRemoved) Kind() Kind { return KindCrewMemberRemoved }

type CrewMemberLaunched struct {
	Header
	Member string `json:"member"`
}

func (CrewMemberLaunched) Kind() Kind { return KindCrewMemberLaunched }
