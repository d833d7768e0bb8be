package backend

// Wire types exchanged with the hosted backend. Field tags mirror the JSON
// the edge functions produce and consume; the backend owns the schema.

// Session is the opaque bearer credential issued after authentication.
type Session struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	RefreshToken string      `json:"refresh_token"`
	User         SessionUser `json:"user"`
}

// SessionUser is the authenticated identity embedded in a session.
type SessionUser struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	Metadata UserMetadata `json:"user_metadata"`
}

// UserMetadata carries the profile attributes the auth service stores
// alongside the account at signup time.
type UserMetadata struct {
	Name     string `json:"name,omitempty"`
	UserType string `json:"userType,omitempty"`
	Language string `json:"language,omitempty"`
	Location string `json:"location,omitempty"`
}

// SignupPayload is the body of POST /signup. One flat shape for every role;
// role-specific fields are simply empty for the roles they do not apply to.
type SignupPayload struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	UserRole      string `json:"userRole"`
	Language      string `json:"language"`
	Location      string `json:"location"`
	FarmSize      string `json:"farmSize,omitempty"`
	FarmType      string `json:"farmType,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	IDNumber      string `json:"idNumber,omitempty"`
	BusinessName  string `json:"businessName,omitempty"`
	VehicleType   string `json:"vehicleType,omitempty"`
	AdminUsername string `json:"adminUsername,omitempty"`
}

// BuyerSignupPayload is the body of POST /buyer-signup, the standalone buyer
// portal variant.
type BuyerSignupPayload struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	PhoneNumber  string `json:"phoneNumber"`
	BusinessName string `json:"businessName,omitempty"`
	Location     string `json:"location,omitempty"`
	Language     string `json:"language"`
}

// Profile is the backend-owned view of an account; read-mostly from here.
type Profile struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	UserType        string `json:"userType"`
	Language        string `json:"language"`
	Location        string `json:"location"`
	FarmSize        string `json:"farmSize,omitempty"`
	FarmType        string `json:"farmType,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	IDNumber        string `json:"idNumber,omitempty"`
	BusinessName    string `json:"businessName,omitempty"`
	VehicleType     string `json:"vehicleType,omitempty"`
	AdminUsername   string `json:"adminUsername,omitempty"`
	PaymentVerified bool   `json:"paymentVerified"`
	CreatedAt       string `json:"createdAt,omitempty"`
}

// ProfileUpdate is the body of PUT /profile. Only set fields are sent.
type ProfileUpdate struct {
	Language string `json:"language,omitempty"`
	Location string `json:"location,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Product is a farmer-owned inventory entry.
type Product struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// ProductInput is the body of POST and PUT /products.
type ProductInput struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

// Listing is a published marketplace offer.
type Listing struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	FarmerName     string  `json:"farmerName"`
	FarmerLocation string  `json:"farmerLocation"`
	Price          float64 `json:"price"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Description    string  `json:"description"`
	Location       string  `json:"location"`
	Category       string  `json:"category"`
	Rating         float64 `json:"rating"`
	Views          int     `json:"views"`
	CreatedAt      string  `json:"createdAt,omitempty"`
}

// ListingInput is the body of POST /marketplace/listings.
type ListingInput struct {
	ProductID   string  `json:"productId"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Category    string  `json:"category"`
}

// Order is a buyer-side purchase record.
type Order struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	TotalPrice  float64 `json:"totalPrice"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// Delivery is a transporter-side job record.
type Delivery struct {
	ID               string  `json:"id"`
	ProductName      string  `json:"productName"`
	PickupLocation   string  `json:"pickupLocation"`
	DeliveryLocation string  `json:"deliveryLocation"`
	Fee              float64 `json:"fee"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	CompletedAt      string  `json:"completedAt,omitempty"`
}

// ChatMessage is one community chat entry.
type ChatMessage struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserLocation string `json:"userLocation,omitempty"`
	Message      string `json:"message"`
	Language     string `json:"language"`
	Timestamp    string `json:"timestamp"`
}

// Weather is the full weather payload for a location.
type Weather struct {
	Current     CurrentWeather  `json:"current"`
	Forecast    []ForecastDay   `json:"forecast"`
	Alerts      []WeatherAlert  `json:"alerts,omitempty"`
	Predictions WeatherAdvisory `json:"aiPredictions"`
}

// CurrentWeather holds present conditions.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Rainfall    float64 `json:"rainfall"`
	LastUpdated string  `json:"lastUpdated"`
}

// ForecastDay is one entry in the 7-day forecast.
type ForecastDay struct {
	Day  string  `json:"day"`
	Icon string  `json:"icon"`
	Temp float64 `json:"temp"`
	Rain float64 `json:"rain"`
}

// WeatherAlert is an advisory warning attached to a forecast.
type WeatherAlert struct {
	Message string `json:"message"`
}

// WeatherAdvisory carries the backend-generated farming advice strings.
type WeatherAdvisory struct {
	IrrigationAdvice string `json:"irrigationAdvice"`
	PlantingWindow   string `json:"plantingWindow"`
	PestRisk         string `json:"pestRisk"`
	HarvestAdvice    string `json:"harvestAdvice"`
}

// AdminStats is the aggregate view behind GET /admin-stats.
type AdminStats struct {
	Farmers      int     `json:"farmers"`
	Buyers       int     `json:"buyers"`
	Transporters int     `json:"transporters"`
	Products     int     `json:"products"`
	Orders       int     `json:"orders"`
	Revenue      float64 `json:"revenue"`
}

// AdminUser is one row of the admin user listing.
type AdminUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	UserType  string `json:"userType"`
	Location  string `json:"location,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Announcement is a ministry bulletin with localized title and content maps
// keyed by language code.
type Announcement struct {
	ID       string            `json:"id"`
	Image    string            `json:"image,omitempty"`
	Category string            `json:"category"`
	Date     string            `json:"date"`
	Title    map[string]string `json:"title"`
	Content  map[string]string `json:"content"`
}

// Feedback is one public testimonial.
type Feedback struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
