package mailer

import "html/template"

const layoutStart = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #667eea; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
.content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
.button { display: inline-block; background: #667eea; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin-top: 20px; }
.footer { text-align: center; margin-top: 20px; color: #888; font-size: 12px; }
</style>
</head>
<body><div class="container">`

const layoutEnd = `<div class="footer"><p>Hotel Management System</p></div>
</div></body>
</html>`

var welcomeTmpl = template.Must(template.New("welcome").Parse(layoutStart + `
<div class="header"><h1>Welcome to Our Hotel!</h1></div>
<div class="content">
<h2>Hello {{.Name}}!</h2>
<p>Thank you for creating an account with Hotel Management System.</p>
<p>With your new account you can browse hotels, book rooms and manage your reservations.</p>
<a href="{{.FrontendURL}}" class="button">Explore Hotels</a>
</div>` + layoutEnd))

var resetTmpl = template.Must(template.New("password_reset").Parse(layoutStart + `
<div class="header"><h1>Password Reset Request</h1></div>
<div class="content">
<h2>Hello {{.Name}}!</h2>
<p>We received a request to reset your password. Click the button below to create a new password:</p>
<a href="{{.Link}}" class="button">Reset Password</a>
<p>This link will expire in {{.ExpiresIn}} minutes. If you didn't request this, please ignore this email.</p>
<p style="font-size: 12px; color: #666;">If the button doesn't work, copy this link into your browser:<br>
<a href="{{.Link}}">{{.Link}}</a></p>
</div>` + layoutEnd))

var bookingConfirmedTmpl = template.Must(template.New("booking_confirmed").Parse(layoutStart + `
<div class="header"><h1>Booking Confirmed</h1></div>
<div class="content">
<h2>Hello {{.GuestName}}!</h2>
<p>Your booking #{{.BookingID}} at <strong>{{.HotelName}}</strong> is confirmed.</p>
<ul>
<li>Room: {{.RoomNumber}}</li>
<li>Check-in: {{.CheckIn}}</li>
<li>Check-out: {{.CheckOut}}</li>
<li>Nights: {{.Nights}}</li>
<li>Total: {{printf "%.2f" .TotalPrice}}</li>
</ul>
</div>` + layoutEnd))

var bookingCancelledTmpl = template.Must(template.New("booking_cancelled").Parse(layoutStart + `
<div class="header"><h1>Booking Cancelled</h1></div>
<div class="content">
<h2>Hello {{.GuestName}}!</h2>
<p>Your booking #{{.BookingID}} at <strong>{{.HotelName}}</strong> for {{.CheckIn}} to {{.CheckOut}} has been cancelled.</p>
</div>` + layoutEnd))
