package dto

type CreateDriverRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	IDNo       string `json:"id_no"`
	LicenseNo  string `json:"license_no"`
	VehicleReg string `json:"vehicle_reg"`
}

type DriverDocsRequest struct {
	IDNo       string `json:"id_no,omitempty"`
	LicenseNo  string `json:"license_no,omitempty"`
	VehicleReg string `json:"vehicle_reg,omitempty"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type ArticleRequest struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Author        string   `json:"author,omitempty"`
	ReadingTime   int      `json:"reading_time,omitempty"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags,omitempty"`
}

type SettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}
