package request

import (
	"slotbook/internal/domain/user"
	"slotbook/internal/usecase/commands"
)

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"business_name" binding:"required,min=2,max=100"`
	OwnerName    string `json:"owner_name" binding:"required,min=2,max=100"`
	Phone        string `json:"phone" binding:"omitempty,max=20"`
	BusinessType string `json:"business_type" binding:"omitempty,max=50"`
}

func (r RegisterRequest) ToInput() commands.RegisterInput {
	return commands.RegisterInput{
		Email:        r.Email,
		Password:     r.Password,
		BusinessName: r.BusinessName,
		OwnerName:    r.OwnerName,
		Phone:        r.Phone,
		BusinessType: r.BusinessType,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest only carries fields an owner may change; anything else is rejected.
type UpdateProfileRequest struct {
	BusinessName *string          `json:"business_name" binding:"omitempty,min=2,max=100"`
	OwnerName    *string          `json:"owner_name" binding:"omitempty,min=2,max=100"`
	Phone        *string          `json:"phone" binding:"omitempty,max=20"`
	BusinessType *string          `json:"business_type" binding:"omitempty,max=50"`
	Settings     *SettingsRequest `json:"settings"`
}

func (r UpdateProfileRequest) ToPatch() user.ProfilePatch {
	p := user.ProfilePatch{
		BusinessName: r.BusinessName,
		OwnerName:    r.OwnerName,
		Phone:        r.Phone,
		BusinessType: r.BusinessType,
	}
	if r.Settings != nil {
		sp := r.Settings.ToPatch()
		p.Settings = &sp
	}
	return p
}

type SettingsRequest struct {
	WorkingHours         map[string]user.DayHours  `json:"working_hours"`
	NotificationSettings *user.NotificationSettings `json:"notification_settings"`
	Branding             *user.Branding             `json:"branding"`
}

func (r SettingsRequest) ToPatch() user.SettingsPatch {
	return user.SettingsPatch{
		WorkingHours:         r.WorkingHours,
		NotificationSettings: r.NotificationSettings,
		Branding:             r.Branding,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
