package i18n

var english = Catalog{
	KeyNameRequired:  "Name is required",
	KeyPhoneRequired: "Phone is required",
	KeyPhoneInvalid:  "Invalid phone number",
	KeyEmailInvalid:  "Invalid email",
	KeyDateRequired:  "Date is required",
	KeyDateInPast:    "Date cannot be in the past",

	KeyWindSafe:          "Optimal flying conditions",
	KeyWindCaution:       "Moderate wind - proceed with care",
	KeyWindDanger:        "Strong wind - not recommended",
	KeyMayBeRescheduled:  "Confirm (may be rescheduled)",
	KeyWindWarning:       "⚠️ Warning: Wind speed %s m/s",
	KeyWindWarningDetail: "High wind speed may affect drone operation. Consider rescheduling.",

	KeyBookingConfirmed: "Booking confirmed",
	KeyBookingFailed:    "Booking could not be sent. Please try again.",
	KeyBookingSubmitted: "Booking received! We will contact you shortly.",
	KeyConfirmBooking:   "Confirm Booking",
	KeySubmitting:       "Submitting...",
	KeySelectDate:       "Select a date",

	KeyNotProvided:  "Not provided",
	KeyNotAvailable: "N/A",

	KeyFieldName:    "Full Name",
	KeyFieldPhone:   "Phone",
	KeyFieldAddress: "Address (optional)",
	KeyFieldEmail:   "Email (optional)",
	KeyFieldDate:    "Date",

	KeyMessageTitle:     "🚁 New Booking Request",
	KeyMessageClient:    "📋 Client: %s",
	KeyMessagePhone:     "📞 Phone: %s",
	KeyMessageAddress:   "📍 Address: %s",
	KeyMessageEmail:     "📧 Email: %s",
	KeyMessageDate:      "📅 Date: %s",
	KeyMessageWeather:   "🌡️ Weather: %s°C - %s",
	KeyMessageWind:      "💨 Wind: %s m/s",
	KeyMessageDegree:    "°C",
	KeyMessageSpeedUnit: "m/s",
	KeyMessageAutomated: "This is an automated notification from ALL Weather Booking System.",

	KeyAdminEmailSubject:  "🚁 New Booking: %s - %s",
	KeyCustomerSubject:    "✅ Booking Confirmation - ALL Weather",
	KeyCustomerHeading:    "✅ Your Booking is Confirmed",
	KeyCustomerGreeting:   "Dear %s,",
	KeyCustomerThanks:     "Thank you for booking with ALL Weather. Your booking details:",
	KeyCustomerService:    "Service",
	KeyCustomerServiceVal: "Drone Cleaning",
	KeyCustomerFollowUp:   "Our team will contact you soon to confirm the details.",
	KeyCustomerInquiries:  "For inquiries: %s",

	KeyWhatsAppGreeting: "Hello, I would like to inquire about drone cleaning services",

	KeyWeatherUnavailable: "Weather data unavailable",
	KeyHumidity:           "Humidity",
}

var arabic = Catalog{
	KeyNameRequired:  "الاسم مطلوب",
	KeyPhoneRequired: "رقم الهاتف مطلوب",
	KeyPhoneInvalid:  "رقم هاتف غير صالح",
	KeyEmailInvalid:  "بريد إلكتروني غير صالح",
	KeyDateRequired:  "التاريخ مطلوب",
	KeyDateInPast:    "لا يمكن اختيار تاريخ سابق",

	KeyWindSafe:          "ظروف طيران مثالية",
	KeyWindCaution:       "رياح معتدلة - المضي بحذر",
	KeyWindDanger:        "رياح قوية - غير موصى به",
	KeyMayBeRescheduled:  "تأكيد (قد يتم إعادة الجدولة)",
	KeyWindWarning:       "⚠️ تحذير: سرعة الرياح %s م/ث",
	KeyWindWarningDetail: "قد تؤثر سرعة الرياح العالية على تشغيل الدرون. يُنصح بإعادة الجدولة.",

	KeyBookingConfirmed: "تم الحجز بنجاح",
	KeyBookingFailed:    "تعذر إرسال الحجز. يرجى المحاولة مرة أخرى.",
	KeyBookingSubmitted: "تم استلام الحجز! سنتواصل معك قريباً.",
	KeyConfirmBooking:   "تأكيد الحجز",
	KeySubmitting:       "جارٍ الإرسال...",
	KeySelectDate:       "اختر تاريخاً",

	KeyNotProvided:  "غير محدد",
	KeyNotAvailable: "غ/م",

	KeyFieldName:    "الاسم الكامل",
	KeyFieldPhone:   "رقم الهاتف",
	KeyFieldAddress: "العنوان (اختياري)",
	KeyFieldEmail:   "البريد الإلكتروني (اختياري)",
	KeyFieldDate:    "التاريخ",

	KeyMessageTitle:     "🚁 طلب حجز جديد",
	KeyMessageClient:    "📋 العميل: %s",
	KeyMessagePhone:     "📞 الهاتف: %s",
	KeyMessageAddress:   "📍 العنوان: %s",
	KeyMessageEmail:     "📧 البريد: %s",
	KeyMessageDate:      "📅 التاريخ: %s",
	KeyMessageWeather:   "🌡️ الطقس: %s°س - %s",
	KeyMessageWind:      "💨 الرياح: %s م/ث",
	KeyMessageDegree:    "°س",
	KeyMessageSpeedUnit: "م/ث",
	KeyMessageAutomated: "هذا إشعار تلقائي من نظام حجوزات ALL Weather.",

	KeyAdminEmailSubject:  "🚁 حجز جديد: %s - %s",
	KeyCustomerSubject:    "✅ تأكيد الحجز - ALL Weather",
	KeyCustomerHeading:    "✅ تم تأكيد حجزك",
	KeyCustomerGreeting:   "عزيزي %s،",
	KeyCustomerThanks:     "شكراً لحجزك مع ALL Weather. تفاصيل حجزك:",
	KeyCustomerService:    "الخدمة",
	KeyCustomerServiceVal: "تنظيف بالدرون",
	KeyCustomerFollowUp:   "سيتواصل معك فريقنا قريباً لتأكيد التفاصيل.",
	KeyCustomerInquiries:  "للاستفسارات: %s",

	KeyWhatsAppGreeting: "مرحباً، أريد الاستفسار عن خدمات التنظيف بالدرون",

	KeyWeatherUnavailable: "بيانات الطقس غير متوفرة",
	KeyHumidity:           "الرطوبة",
}
