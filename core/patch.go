package core

// ContactPatch is an explicit per-field update of a Contact.
// A nil field leaves the contact's value unchanged; a non-nil field
// replaces it wholesale. Optional values are cleared by pointing at their
// zero value (an empty string, an empty slice, an empty sub-record).
// The ID and LastMessageTime are owned by the repository and cannot be
// patched.
type ContactPatch struct {
	Name                   *string
	Age                    *int
	IntellectualDisability *string
	AssistanceLevel        *AssistanceLevel
	CID                    *string
	Stereotypies           *[]string
	Likes                  *[]string
	Dislikes               *[]string
	Medications            *[]Medication
	Communication          *Communication
	Mobility               *Mobility
	SpecificNeeds          *string
	Avatar                 *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ContactPatch) IsEmpty() bool {
	return p == ContactPatch{}
}

// Apply writes the set fields of the patch into c.
func (p ContactPatch) Apply(c *Contact) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Age != nil {
		c.Age = *p.Age
	}
	if p.IntellectualDisability != nil {
		c.IntellectualDisability = *p.IntellectualDisability
	}
	if p.AssistanceLevel != nil {
		c.AssistanceLevel = *p.AssistanceLevel
	}
	if p.CID != nil {
		c.CID = *p.CID
	}
	if p.Stereotypies != nil {
		c.Stereotypies = cloneStrings(*p.Stereotypies)
	}
	if p.Likes != nil {
		c.Likes = cloneStrings(*p.Likes)
	}
	if p.Dislikes != nil {
		c.Dislikes = cloneStrings(*p.Dislikes)
	}
	if p.Medications != nil {
		c.Medications = cloneMedications(*p.Medications)
		if len(c.Medications) == 0 {
			c.Medications = nil
		}
	}
	if p.Communication != nil {
		if *p.Communication == (Communication{}) {
			c.Communication = nil
		} else {
			c.Communication = p.Communication.Clone()
		}
	}
	if p.Mobility != nil {
		if *p.Mobility == (Mobility{}) {
			c.Mobility = nil
		} else {
			c.Mobility = p.Mobility.Clone()
		}
	}
	if p.SpecificNeeds != nil {
		c.SpecificNeeds = *p.SpecificNeeds
	}
	if p.Avatar != nil {
		c.Avatar = *p.Avatar
	}
}
