package client

// StaynestClient groups the API calls by resource over one cookie-carrying session.
type StaynestClient struct {
	httpClient *HttpClient
}

func NewStaynestClient(baseURL string) *StaynestClient {
	return &StaynestClient{httpClient: NewHttpClient(baseURL)}
}

func (c *StaynestClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *StaynestClient) Test() (*Response, error) {
	return c.httpClient.GET("/api/test")
}

func (c *StaynestClient) Register(name, email, password string) (*Response, error) {
	return c.httpClient.POST("/api/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *StaynestClient) Login(email, password string) (*Response, error) {
	return c.httpClient.POST("/api/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *StaynestClient) Profile() (*Response, error) {
	return c.httpClient.GET("/api/profile")
}

func (c *StaynestClient) Logout() (*Response, error) {
	return c.httpClient.POST("/api/logout", nil)
}

func (c *StaynestClient) CreatePlace(body any) (*Response, error) {
	return c.httpClient.POST("/api/places", body)
}

func (c *StaynestClient) UpdatePlace(body any) (*Response, error) {
	return c.httpClient.PUT("/api/places", body)
}

func (c *StaynestClient) MyPlaces() (*Response, error) {
	return c.httpClient.GET("/api/places")
}

func (c *StaynestClient) GetPlace(id string) (*Response, error) {
	return c.httpClient.GET("/api/places/" + id)
}

func (c *StaynestClient) HomePlaces() (*Response, error) {
	return c.httpClient.GET("/api/home-places")
}

func (c *StaynestClient) CreateBooking(body any) (*Response, error) {
	return c.httpClient.POST("/api/bookings", body)
}

func (c *StaynestClient) MyBookings() (*Response, error) {
	return c.httpClient.GET("/api/bookings")
}

func (c *StaynestClient) UploadByLink(link string) (*Response, error) {
	return c.httpClient.POST("/api/upload-by-link", map[string]string{"link": link})
}

func (c *StaynestClient) UploadImages(files []UploadFile) (*Response, error) {
	return c.httpClient.POSTMultipart("/api/upload-image", "photos", files)
}
