package models

import (
	"time"
)

type Role string

const (
	RoleGuru    Role = "guru"
	RoleShishya Role = "shishya"
)

func (r Role) Valid() bool {
	return r == RoleGuru || r == RoleShishya
}

type PostType string

const (
	PostImage   PostType = "IMAGE"
	PostVideo   PostType = "VIDEO"
	PostArticle PostType = "ARTICLE"
)

func (t PostType) Valid() bool {
	return t == PostImage || t == PostVideo || t == PostArticle
}

// NeedsMedia reports whether posts of this type carry a media file.
func (t PostType) NeedsMedia() bool {
	return t == PostImage || t == PostVideo
}

type CallType string

const (
	CallVideo CallType = "video"
	CallVoice CallType = "voice"
)

func (t CallType) Valid() bool {
	return t == CallVideo || t == CallVoice
}

type BankDetails struct {
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	UPIID         string `json:"upiId"`
}

// Masked hides all but the last four digits of the account number.
func (b BankDetails) Masked() BankDetails {
	out := b
	n := len(b.AccountNumber)
	if n > 4 {
		out.AccountNumber = "XXXX XXXX " + b.AccountNumber[n-4:]
	}
	return out
}

// GuruProfile holds the fields only a Guru carries.
type GuruProfile struct {
	Age         int          `json:"age"`
	Expertise   string       `json:"expertise"`
	Bio         string       `json:"bio"`
	Rating      float64      `json:"rating"`
	Reviews     int          `json:"reviews"`
	UPIID       string       `json:"upiId"`
	BankDetails *BankDetails `json:"bankDetails,omitempty"`
}

type User struct {
	ID                string       `json:"id" db:"id"`
	Role              Role         `json:"role" db:"role"`
	FirstName         string       `json:"firstName" db:"first_name"`
	LastName          string       `json:"lastName" db:"last_name"`
	Username          string       `json:"username" db:"username"`
	Email             string       `json:"email" db:"email"`
	Mobile            string       `json:"mobile" db:"mobile"`
	PasswordHash      string       `json:"passwordHash,omitempty" db:"password_hash"`
	ProfilePictureURL string       `json:"profilePictureUrl" db:"avatar_url"`
	DOB               string       `json:"dob,omitempty" db:"dob"`
	Gender            string       `json:"gender,omitempty" db:"gender"`
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
	Guru              *GuruProfile `json:"guru,omitempty" db:"-"`
}

func (u *User) IsGuru() bool {
	return u != nil && u.Role == RoleGuru
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Public returns a copy without the credential, with bank details masked.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	if u.Guru != nil {
		g := *u.Guru
		if g.BankDetails != nil {
			masked := g.BankDetails.Masked()
			g.BankDetails = &masked
		}
		out.Guru = &g
	}
	return &out
}

// Clone is a deep copy, safe to hand out from a repository.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	if u.Guru != nil {
		g := *u.Guru
		if g.BankDetails != nil {
			b := *g.BankDetails
			g.BankDetails = &b
		}
		out.Guru = &g
	}
	return &out
}

// Author is the summary joined onto posts at read time.
type Author struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	Expertise         string `json:"expertise"`
}

func AuthorOf(u *User) *Author {
	if u == nil {
		return nil
	}
	a := &Author{
		ID:                u.ID,
		Name:              u.FullName(),
		Username:          u.Username,
		ProfilePictureURL: u.ProfilePictureURL,
	}
	if u.Guru != nil {
		a.Expertise = u.Guru.Expertise
	}
	return a
}

type Post struct {
	ID        string    `json:"id" db:"id"`
	GuruID    string    `json:"guruId" db:"creator_id"`
	Type      PostType  `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	MediaURL  string    `json:"mediaUrl,omitempty" db:"media_url"`
	Likes     int       `json:"likes" db:"likes_count"`
	Comments  int       `json:"comments" db:"comments_count"`
	Timestamp time.Time `json:"timestamp" db:"created_at"`
	Guru      *Author   `json:"guru,omitempty" db:"-"`
}

type CallRecord struct {
	ID                     string    `json:"id" gorm:"primaryKey;type:uuid"`
	CallerID               string    `json:"callerId" gorm:"index;not null"`
	CallerName             string    `json:"callerName"`
	CallerProfilePicture   string    `json:"callerProfilePic"`
	ReceiverID             string    `json:"receiverId" gorm:"index;not null"`
	ReceiverName           string    `json:"receiverName"`
	ReceiverProfilePicture string    `json:"receiverProfilePic"`
	Type                   CallType  `json:"type" gorm:"size:10;not null"`
	Timestamp              time.Time `json:"timestamp" gorm:"index"`
	Duration               int64     `json:"duration"`
	EndReason              string    `json:"endReason,omitempty" gorm:"size:20"`
}

func (CallRecord) TableName() string { return "call_records" }

type CommissionRecord struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid"`
	PostID           string    `json:"postId" gorm:"index"`
	GuruID           string    `json:"guruId" gorm:"index"`
	GuruName         string    `json:"guruName"`
	ShishyaID        string    `json:"shishyaId" gorm:"index"`
	ShishyaName      string    `json:"shishyaName"`
	TotalAmount      float64   `json:"totalAmount" gorm:"type:numeric(12,2)"`
	CommissionAmount float64   `json:"commissionAmount" gorm:"type:numeric(12,2)"`
	Timestamp        time.Time `json:"timestamp" gorm:"index"`
}

func (CommissionRecord) TableName() string { return "commission_records" }

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	User      *User     `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Preferences struct {
	UserID   string `json:"userId"`
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

type FeedbackRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	FeedbackText string    `json:"feedbackText"`
	Timestamp    time.Time `json:"timestamp"`
}

// Stats is the owner dashboard summary.
type Stats struct {
	Gurus           int     `json:"gurus"`
	Shishyas        int     `json:"shishyas"`
	Posts           int     `json:"posts"`
	Calls           int     `json:"calls"`
	DakshinaVolume  float64 `json:"dakshinaVolume"`
	CommissionTotal float64 `json:"commissionTotal"`
}
