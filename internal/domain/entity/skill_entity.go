package entity

// DefaultSkillColor is applied when a skill is added without a color.
const DefaultSkillColor = "text-white"

// Skill is one entry of the skills grid. Order is a dense 1-based rank.
type Skill struct {
	ID       string `json:"_id"`
	Label    string `json:"label"`
	IconName string `json:"iconName"`
	Link     string `json:"link"`
	Color    string `json:"color"`
	Order    int    `json:"order"`
}
