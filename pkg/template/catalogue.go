// catalogue.go - The built-in poster designs. Every render routine works in
// its definition's canonical pixel space and reads inputs only through Values.
package template

import (
	"github.com/vck-social/postergen/pkg/canvas"
)

var (
	birthdayPurple = canvas.Hex("#4a148c")
	birthdayPlum   = canvas.Hex("#880e4f")
	achieveBlue    = canvas.Hex("#0d47a1")
	achieveTeal    = canvas.Hex("#004d40")
	mournNight     = canvas.Hex("#1a1a2e")
	mournNavy      = canvas.Hex("#16213e")
	mournSilver    = canvas.Hex("#e0e0e0")
)

// Catalogue returns fresh copies of the built-in definitions in gallery order.
func Catalogue() []*Definition {
	return []*Definition{
		festivalGreeting(),
		birthdayGreeting(),
		campaignPoster(),
		eventAnnouncement(),
		storyTemplate(),
		achievementPost(),
		condolenceMessage(),
		announcementBanner(),
	}
}

func nameField(label, placeholder string) Field {
	return Field{Key: "name", Label: label, Kind: FieldText, Placeholder: placeholder}
}

func designationField(placeholder string) Field {
	return Field{Key: "designation", Label: "Designation", Kind: FieldText, Placeholder: placeholder}
}

func photoField(label string) Field {
	return Field{Key: "photo", Label: label, Kind: FieldImage}
}

// ── 1:1 greetings ──

func festivalGreeting() *Definition {
	return &Definition{
		ID:        "festival-greeting",
		Name:      "Festival Greeting",
		NameTamil: "திருவிழா வாழ்த்துகள்",
		Category:  CategoryFestival,
		Aspect:    AspectSquare,
		Width:     1080,
		Height:    1080,
		Language:  "Tamil",
		Fields: []Field{
			nameField("Your Name", "Enter your name"),
			designationField("Your title"),
			{Key: "festival", Label: "Festival Name", Kind: FieldText, Default: "பொங்கல் நல்வாழ்த்துகள்", Placeholder: "Festival greeting"},
			{Key: "message", Label: "Message", Kind: FieldMultiline, Default: "இனிய திருநாள் வாழ்த்துகள்!", Placeholder: "Your message"},
			photoField("Your Photo"),
		},
		Render: renderFestivalGreeting,
	}
}

func renderFestivalGreeting(s canvas.Surface, v Values) {
	w, h := v.W(), v.H()
	canvas.PartyGradient(s, w, h, 135)
	canvas.Dots(s, w, h)

	s.SetStrokeColor(canvas.White(0.1))
	s.SetLineWidth(2)
	canvas.Ring(s, w/2, h/2-50, 300)
	canvas.Ring(s, w/2, h/2-50, 320)

	s.SetFillColor(canvas.Gold)
	s.SetFont(bold(64))
	s.SetTextAlign(canvas.AlignCenter)
	s.FillText(or(v.Text("festival"), "திருவிழா வாழ்த்துகள்"), w/2, 200)

	s.SetStrokeColor(canvas.Gold)
	s.SetLineWidth(3)
	canvas.HLine(s, w/2-120, w/2+120, 230)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(regular(32))
	canvas.WrapText(s, v.Text("message"), w/2, 310, 700, 45)

	framedPortrait(s, v.Image("photo"), w/2-90, 480, 90, 2, 4, canvas.Gold)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(36))
	s.FillText(or(v.Text("name"), "Your Name"), w/2, 720)

	s.SetFillColor(canvas.White(0.7))
	s.SetFont(regular(24))
	s.FillText(or(v.Text("designation"), "Designation"), w/2, 760)

	canvas.BrandBar(s, w, h)
}

func birthdayGreeting() *Definition {
	return &Definition{
		ID:        "birthday-greeting",
		Name:      "Birthday Greeting",
		NameTamil: "பிறந்தநாள் வாழ்த்துகள்",
		Category:  CategoryBirthday,
		Aspect:    AspectSquare,
		Width:     1080,
		Height:    1080,
		Language:  "Tamil",
		Fields: []Field{
			nameField("Your Name", "Who is wishing"),
			designationField("Your title"),
			{Key: "birthday_person", Label: "Birthday Person", Kind: FieldText, Placeholder: "Name of the person"},
			{Key: "message", Label: "Message", Kind: FieldMultiline, Default: "இனிய பிறந்தநாள் வாழ்த்துகள்!", Placeholder: "Birthday message"},
			photoField("Your Photo"),
		},
		Render: renderBirthdayGreeting,
	}
}

func renderBirthdayGreeting(s canvas.Surface, v Values) {
	w, h := v.W(), v.H()
	canvas.DiagonalGradient(s, w, h,
		canvas.Stop{Offset: 0, Color: canvas.PartyNavy},
		canvas.Stop{Offset: 0.5, Color: birthdayPurple},
		canvas.Stop{Offset: 1, Color: birthdayPlum},
	)
	canvas.Dots(s, w, h)

	drawCake(s, w/2, 150, 80)

	s.SetFillColor(canvas.Gold)
	s.SetFont(bold(56))
	s.SetTextAlign(canvas.AlignCenter)
	s.FillText("பிறந்தநாள் வாழ்த்துகள்", w/2, 260)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(44))
	s.FillText(or(v.Text("birthday_person"), "Name"), w/2, 350)

	s.SetStrokeColor(canvas.Gold)
	s.SetLineWidth(2)
	canvas.HLine(s, w/2-100, w/2+100, 375)

	s.SetFillColor(canvas.White(0.85))
	s.SetFont(regular(28))
	canvas.WrapText(s, v.Text("message"), w/2, 440, 700, 40)

	framedPortrait(s, v.Image("photo"), w/2-75, 580, 75, 2, 3, canvas.Gold)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(30))
	s.FillText(or(v.Text("name"), "Your Name"), w/2, 790)
	s.SetFillColor(canvas.White(0.6))
	s.SetFont(regular(22))
	s.FillText(or(v.Text("designation"), "Designation"), w/2, 825)

	canvas.BrandBar(s, w, h)
}

// ── Campaign ──

func campaignPoster() *Definition {
	return &Definition{
		ID:        "campaign-poster",
		Name:      "Campaign Poster",
		NameTamil: "பிரச்சார போஸ்டர்",
		Category:  CategoryCampaign,
		Aspect:    AspectPortrait,
		Width:     1080,
		Height:    1350,
		Language:  "Tamil",
		Fields: []Field{
			nameField("Candidate Name", "Candidate name"),
			designationField("Position"),
			{Key: "constituency", Label: "Constituency", Kind: FieldText, Placeholder: "Your constituency"},
			{Key: "slogan", Label: "Campaign Slogan", Kind: FieldMultiline, Default: "சமூக நீதிக்காக போராடுவோம்!", Placeholder: "Your slogan"},
			photoField("Your Photo"),
		},
		Render: renderCampaignPoster,
	}
}

func renderCampaignPoster(s canvas.Surface, v Values) {
	w, h := v.W(), v.H()
	canvas.PartyGradient(s, w, h, 180)
	canvas.Dots(s, w, h)

	s.SetFillColor(canvas.Gold)
	s.FillRect(0, 0, w, 6)

	s.SetFillColor(canvas.White(0.5))
	s.SetFont(bold(28))
	s.SetTextAlign(canvas.AlignCenter)
	s.FillText(canvas.PartyNameTamil, w/2, 70)

	if photo := v.Image("photo"); photo != nil {
		const imgW, imgH = 400.0, 500.0
		x, y := (w-imgW)/2, 120.0
		canvas.RoundRect(s, x-4, y-4, imgW+8, imgH+8, 16)
		s.SetFillColor(canvas.Gold)
		s.Fill()
		canvas.RoundedImage(s, photo, x, y, imgW, imgH, 12)
	}

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(52))
	s.FillText(or(v.Text("name"), "Candidate Name"), w/2, 710)

	s.SetFillColor(canvas.Gold)
	s.SetFont(bold(28))
	s.FillText(or(v.Text("designation"), "Designation"), w/2, 760)

	s.SetFillColor(canvas.White(0.7))
	s.SetFont(regular(26))
	s.FillText(or(v.Text("constituency"), "Constituency"), w/2, 800)

	s.SetStrokeColor(canvas.Gold)
	s.SetLineWidth(2)
	canvas.HLine(s, w/2-150, w/2+150, 830)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(38))
	canvas.WrapText(s, v.Text("slogan"), w/2, 900, 800, 50)

	canvas.Footer(s, w, h, canvas.FooterStyle{
		Height:     80,
		Baseline:   38,
		Background: canvas.Black(0.4),
		Caption:    canvas.BrandCaptionLR,
		Font:       bold(20),
		Text:       canvas.Gold,
	})
}

// ── 16:9 banners ──

func eventAnnouncement() *Definition {
	return &Definition{
		ID:        "event-announcement",
		Name:      "Event Announcement",
		NameTamil: "நிகழ்ச்சி அறிவிப்பு",
		Category:  CategoryEvent,
		Aspect:    AspectLandscape,
		Width:     1920,
		Height:    1080,
		Language:  "Tamil",
		Fields: []Field{
			{Key: "title", Label: "Event Title", Kind: FieldText, Placeholder: "Event name"},
			{Key: "date", Label: "Date & Time", Kind: FieldText, Placeholder: "DD/MM/YYYY - 10:00 AM"},
			{Key: "venue", Label: "Venue", Kind: FieldText, Placeholder: "Location"},
			nameField("Organizer", "Your name"),
			designationField("Your title"),
			photoField("Your Photo"),
		},
		Render: renderEventAnnouncement,
	}
}

func renderEventAnnouncement(s canvas.Surface, v Values) {
	w, h := v.W(), v.H()
	canvas.PartyGradient(s, w, h, 120)
	canvas.Dots(s, w, h)

	s.SetFillColor(canvas.Gold)
	s.FillRect(0, 0, 8, h)

	s.SetFillColor(canvas.White(0.4))
	s.SetFont(bold(24))
	s.SetTextAlign(canvas.AlignLeft)
	s.FillText(canvas.PartyNameTamil, 50, 60)

	s.SetFillColor(canvas.Gold)
	s.SetFont(bold(72))
	canvas.WrapText(s, or(v.Text("title"), "Event Title"), 50, 200, 1100, 85)

	drawCalendar(s, 50, 440, 36)
	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(36))
	s.FillText(or(v.Text("date"), "Date"), 100, 440)

	drawPin(s, 50, 500, 32)
	s.SetFillColor(canvas.White(0.8))
	s.SetFont(regular(32))
	s.FillText(or(v.Text("venue"), "Venue"), 100, 500)

	framedPortrait(s, v.Image("photo"), w-350, 180, 130, 3, 4, canvas.Gold)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(30))
	s.SetTextAlign(canvas.AlignRight)
	s.FillText(or(v.Text("name"), "Organizer"), w-50, 510)
	s.SetFillColor(canvas.White(0.6))
	s.SetFont(regular(24))
	s.FillText(or(v.Text("designation"), "Designation"), w-50, 550)

	canvas.Footer(s, w, h, canvas.FooterStyle{
		Height:     70,
		Baseline:   30,
		Background: canvas.Black(0.3),
		Caption:    "VCK | Viduthalai Chiruthaigal Katchi",
		Font:       bold(22),
		Text:       canvas.Gold,
	})
}

func announcementBanner() *Definition {
	return &Definition{
		ID:        "announcement-banner",
		Name:      "Announcement Banner",
		NameTamil: "அறிவிப்பு பேனர்",
		Category:  CategoryAnnouncement,
		Aspect:    AspectLandscape,
		Width:     1920,
		Height:    1080,
		Language:  "Tamil",
		Fields: []Field{
			{Key: "title", Label: "Title", Kind: FieldText, Placeholder: "Announcement title"},
			{Key: "subtitle", Label: "Subtitle", Kind: FieldText, Placeholder: "Subtitle"},
			{Key: "details", Label: "Details", Kind: FieldMultiline, Placeholder: "Announcement details"},
			nameField("Issued By", "Your name"),
			photoField("Photo"),
		},
		Render: renderAnnouncementBanner,
	}
}

func renderAnnouncementBanner(s canvas.Surface, v Values) {
	w, h := v.W(), v.H()
	canvas.PartyGradient(s, w, h, 90)

	s.SetFillColor(canvas.Gold)
	s.FillRect(0, 0, 10, h)

	drawMegaphone(s, 50, 130, 80)

	s.SetFillColor(canvas.Gold)
	s.SetFont(bold(68))
	s.SetTextAlign(canvas.AlignLeft)
	canvas.WrapText(s, or(v.Text("title"), "அறிவிப்பு"), 50, 250, 1300, 80)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(36))
	s.FillText(v.Text("subtitle"), 50, 440)

	s.SetFillColor(canvas.White(0.8))
	s.SetFont(regular(28))
	canvas.WrapText(s, v.Text("details"), 50, 520, 1200, 40)

	framedPortrait(s, v.Image("photo"), w-320, 200, 120, 3, 4, canvas.Gold)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(28))
	s.SetTextAlign(canvas.AlignRight)
	s.FillText(v.Text("name"), w-50, 520)

	canvas.Footer(s, w, h, canvas.FooterStyle{
		Height:     60,
		Baseline:   25,
		Background: canvas.Black(0.3),
		Caption:    canvas.BrandCaptionLR,
		Font:       bold(20),
		Text:       canvas.Gold,
	})
}

// ── 9:16 story ──

func storyTemplate() *Definition {
	return &Definition{
		ID:        "story-template",
		Name:      "Story Post",
		NameTamil: "ஸ்டோரி போஸ்ட்",
		Category:  CategoryGeneral,
		Aspect:    AspectStory,
		Width:     1080,
		Height:    1920,
		Language:  "Tamil",
		Fields: []Field{
			nameField("Your Name", "Your name"),
			designationField("Your title"),
			{Key: "message", Label: "Message", Kind: FieldMultiline, Placeholder: "Your message"},
			{Key: "accent", Label: "Accent Colour", Kind: FieldColor, Default: "#f9a825", Placeholder: "#rrggbb"},
			photoField("Your Photo"),
		},
		Render: renderStoryTemplate,
	}
}

func renderStoryTemplate(s canvas.Surface, v Values) {
	w, h := v.W(), v.H()
	accent := v.Color("accent")
	canvas.PartyGradient(s, w, h, 160)
	canvas.Dots(s, w, h)

	s.SetFillColor(accent)
	s.FillRect(0, 0, w, 6)

	s.SetFillColor(canvas.White(0.5))
	s.SetFont(bold(28))
	s.SetTextAlign(canvas.AlignCenter)
	s.FillText(canvas.PartyNameTamil, w/2, 80)

	const imgSize = 350.0
	framedPortrait(s, v.Image("photo"), (w-imgSize)/2, 200, imgSize/2, 4, 5, accent)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(48))
	s.FillText(or(v.Text("name"), "Your Name"), w/2, 650)

	s.SetFillColor(accent)
	s.SetFont(bold(28))
	s.FillText(or(v.Text("designation"), "Designation"), w/2, 700)

	s.SetStrokeColor(canvas.White(0.3))
	s.SetLineWidth(1)
	canvas.HLine(s, w/2-120, w/2+120, 740)

	s.SetFillColor(canvas.White(0.9))
	s.SetFont(regular(34))
	canvas.WrapText(s, or(v.Text("message"), "Your message here"), w/2, 820, 800, 48)

	canvas.Footer(s, w, h, canvas.FooterStyle{
		Height:     100,
		Baseline:   45,
		Background: canvas.Black(0.3),
		Caption:    canvas.BrandCaptionLR,
		Font:       bold(24),
		Text:       accent,
	})
}

// ── Achievement and condolence ──

func achievementPost() *Definition {
	return &Definition{
		ID:        "achievement-post",
		Name:      "Achievement Post",
		NameTamil: "சாதனை பதிவு",
		Category:  CategoryAchievement,
		Aspect:    AspectSquare,
		Width:     1080,
		Height:    1080,
		Premium:   true,
		Language:  "Tamil",
		Fields: []Field{
			nameField("Name", "Achiever name"),
			designationField("Title"),
			{Key: "achievement", Label: "Achievement", Kind: FieldMultiline, Placeholder: "Describe the achievement"},
			photoField("Photo"),
		},
		Render: renderAchievementPost,
	}
}

func renderAchievementPost(s canvas.Surface, v Values) {
	w, h := v.W(), v.H()
	canvas.DiagonalGradient(s, w, h,
		canvas.Stop{Offset: 0, Color: canvas.PartyNavy},
		canvas.Stop{Offset: 0.4, Color: achieveBlue},
		canvas.Stop{Offset: 1, Color: achieveTeal},
	)
	canvas.Dots(s, w, h)

	drawTrophy(s, w/2, 150, 90)

	s.SetFillColor(canvas.Gold)
	s.SetFont(bold(48))
	s.SetTextAlign(canvas.AlignCenter)
	s.FillText("சாதனை", w/2, 240)

	framedPortrait(s, v.Image("photo"), w/2-100, 300, 100, 3, 4, canvas.Gold)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(40))
	s.FillText(or(v.Text("name"), "Name"), w/2, 560)

	s.SetFillColor(canvas.Gold)
	s.SetFont(regular(26))
	s.FillText(or(v.Text("designation"), "Designation"), w/2, 600)

	s.SetFillColor(canvas.White(0.85))
	s.SetFont(regular(28))
	canvas.WrapText(s, or(v.Text("achievement"), "Achievement description"), w/2, 680, 750, 40)

	canvas.BrandBar(s, w, h)
}

func condolenceMessage() *Definition {
	return &Definition{
		ID:        "condolence-message",
		Name:      "Condolence Message",
		NameTamil: "இரங்கல் செய்தி",
		Category:  CategoryCondolence,
		Aspect:    AspectSquare,
		Width:     1080,
		Height:    1080,
		Language:  "Tamil",
		Fields: []Field{
			nameField("Your Name", "Who is expressing condolence"),
			designationField("Your title"),
			{Key: "deceased", Label: "Deceased Name", Kind: FieldText, Placeholder: "Name of the deceased"},
			{Key: "message", Label: "Message", Kind: FieldMultiline, Default: "அவர் ஆத்மா சாந்தியடைய வேண்டுகிறோம்.", Placeholder: "Condolence message"},
			photoField("Photo"),
		},
		Render: renderCondolenceMessage,
	}
}

func renderCondolenceMessage(s canvas.Surface, v Values) {
	w, h := v.W(), v.H()
	canvas.DiagonalGradient(s, w, h,
		canvas.Stop{Offset: 0, Color: mournNight},
		canvas.Stop{Offset: 1, Color: mournNavy},
	)
	canvas.Stripes(s, w, h, 40)

	drawCandle(s, w/2, 120, 60)

	s.SetFillColor(mournSilver)
	s.SetFont(bold(48))
	s.SetTextAlign(canvas.AlignCenter)
	s.FillText("இரங்கல் செய்தி", w/2, 210)

	s.SetStrokeColor(canvas.White(0.2))
	s.SetLineWidth(1)
	canvas.HLine(s, w/2-100, w/2+100, 235)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(44))
	s.FillText(or(v.Text("deceased"), "Name"), w/2, 320)

	framedPortrait(s, v.Image("photo"), w/2-80, 370, 80, 3, 3, canvas.White(0.3))

	s.SetFillColor(canvas.White(0.75))
	s.SetFont(regular(28))
	canvas.WrapText(s, v.Text("message"), w/2, 600, 700, 40)

	s.SetFillColor(canvas.BrandWhite)
	s.SetFont(bold(28))
	s.FillText(or(v.Text("name"), "Your Name"), w/2, 800)
	s.SetFillColor(canvas.White(0.5))
	s.SetFont(regular(22))
	s.FillText(v.Text("designation"), w/2, 835)

	canvas.Footer(s, w, h, canvas.FooterStyle{
		Height:     50,
		Baseline:   20,
		Background: canvas.White(0.1),
		Caption:    canvas.BrandCaptionLR,
		Font:       regular(16),
		Text:       canvas.White(0.4),
	})
}
