// AngelaMos | 2026
// documents.go

package legacy

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Collection names as the old document store created them.
const (
	ColUsers        = "users"
	ColUserMutes    = "usermutes"
	ColPosts        = "posts"
	ColComments     = "comments"
	ColEmojiPacks   = "emojipacks"
	ColEmojis       = "emojis"
	ColReactions    = "reactions"
	ColSiteSettings = "sitesettings"
)

type UserDoc struct {
	ID          bson.ObjectID  `bson:"_id"`
	Username    string         `bson:"username"`
	Email       string         `bson:"email"`
	Password    string         `bson:"password"`
	Avatar      *string        `bson:"avatar"`
	Role        string         `bson:"role"`
	Permissions []string       `bson:"permissions"`
	IsActive    *bool          `bson:"isActive"`
	IsBanned    bool           `bson:"isBanned"`
	BanReason   *string        `bson:"banReason"`
	BannedBy    *bson.ObjectID `bson:"bannedBy"`
	BannedAt    *time.Time     `bson:"bannedAt"`
	CreatedAt   time.Time      `bson:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt"`
}

type MuteDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	User      bson.ObjectID `bson:"user"`
	MutedBy   bson.ObjectID `bson:"mutedBy"`
	Type      string        `bson:"type"`
	Reason    string        `bson:"reason"`
	ExpiresAt time.Time     `bson:"expiresAt"`
	IsActive  bool          `bson:"isActive"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

type PostDoc struct {
	ID            bson.ObjectID `bson:"_id"`
	Title         string        `bson:"title"`
	Slug          string        `bson:"slug"`
	Content       string        `bson:"content"`
	Excerpt       string        `bson:"excerpt"`
	Author        bson.ObjectID `bson:"author"`
	Status        string        `bson:"status"`
	FeaturedImage *string       `bson:"featuredImage"`
	Images        []string      `bson:"images"`
	Videos        []string      `bson:"videos"`
	Tags          []string      `bson:"tags"`
	Category      string        `bson:"category"`
	ViewCount     int64         `bson:"viewCount"`
	PublishedAt   *time.Time    `bson:"publishedAt"`
	CreatedAt     time.Time     `bson:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt"`
}

type CommentDoc struct {
	ID            bson.ObjectID   `bson:"_id"`
	Content       string          `bson:"content"`
	Author        bson.ObjectID   `bson:"author"`
	Post          bson.ObjectID   `bson:"post"`
	ParentComment *bson.ObjectID  `bson:"parentComment"`
	Likes         []bson.ObjectID `bson:"likes"`
	IsApproved    *bool           `bson:"isApproved"`
	CreatedAt     time.Time       `bson:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt"`
}

type PackDoc struct {
	ID          bson.ObjectID `bson:"_id"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	Author      bson.ObjectID `bson:"author"`
	IsActive    *bool         `bson:"isActive"`
	IsPublic    *bool         `bson:"isPublic"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

type EmojiDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"name"`
	Shortcode string        `bson:"shortcode"`
	URL       string        `bson:"url"`
	Category  string        `bson:"category"`
	Tags      []string      `bson:"tags"`
	IsCustom  *bool         `bson:"isCustom"`
	Pack      bson.ObjectID `bson:"pack"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

type ReactionDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	User      bson.ObjectID `bson:"user"`
	Post      bson.ObjectID `bson:"post"`
	Emoji     bson.ObjectID `bson:"emoji"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type SettingsDoc struct {
	SiteName                 string `bson:"siteName"`
	SiteDescription          string `bson:"siteDescription"`
	SiteIcon                 string `bson:"siteIcon"`
	SiteLogo                 string `bson:"siteLogo"`
	PrimaryColor             string `bson:"primaryColor"`
	AllowRegistration        *bool  `bson:"allowRegistration"`
	RequireEmailVerification bool   `bson:"requireEmailVerification"`
	MaxCommentsPerPost       int    `bson:"maxCommentsPerPost"`
	MaxReactionsPerPost      int    `bson:"maxReactionsPerPost"`
}
