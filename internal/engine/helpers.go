package engine

import "fmt"

// absorb applies dmg to a shield first and the remainder to hp. It returns
// how much the shield soaked and how much reached hp. Shields never go
// negative; hp may.
func absorb(shield, hp *int, dmg int) (absorbed, dealt int) {
	if dmg <= 0 {
		return 0, 0
	}
	absorbed = minInt(dmg, maxInt(*shield, 0))
	*shield -= absorbed
	dealt = dmg - absorbed
	*hp -= dealt
	return absorbed, dealt
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// damageText renders a hit, mentioning the shield only when it soaked part.
func damageText(absorbed, dealt int) string {
	if absorbed > 0 {
		return fmt.Sprintf("%d damage (%d absorbed by shield)", dealt, absorbed)
	}
	return fmt.Sprintf("%d damage", dealt)
}
