// AngelaMos | 2026
// dto.go

package reaction

type AddReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,max=52"`
}

type Reactor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Group is every reaction on a post that used one emoji.
type Group struct {
	Emoji string    `json:"emoji"`
	URL   string    `json:"url,omitempty"`
	Count int       `json:"count"`
	Users []Reactor `json:"users"`
}

// groupRows folds rows into groups keyed by shortcode, keeping the order
// in which each emoji was first used.
func groupRows(rows []Row) []Group {
	index := make(map[string]int)
	groups := []Group{}

	for _, r := range rows {
		i, ok := index[r.Shortcode]
		if !ok {
			i = len(groups)
			index[r.Shortcode] = i
			groups = append(groups, Group{Emoji: r.Shortcode, URL: r.URL, Users: []Reactor{}})
		}
		groups[i].Count++
		groups[i].Users = append(groups[i].Users, Reactor{ID: r.AccountID, Username: r.Username})
	}

	return groups
}
