package web

import (
	"errors"
	"net/http"

	"github.com/Izrekatel/Yatube/internal/model"
)

type loginFormData struct {
	basePage
	Username string
	Next     string
	Error    string
}

type signupFormData struct {
	basePage
	Username  string
	Email     string
	FirstName string
	LastName  string
	Errors    map[string]string
}

// Login renders and processes the sign-in form. Identifier may be a
// username or an email address.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	form := loginFormData{
		basePage: h.base(w, r, "Войти"),
		Next:     r.URL.Query().Get("next"),
	}

	if r.Method == http.MethodGet {
		h.render.Render(w, http.StatusOK, "login.html", form)
		return
	}

	if err := r.ParseForm(); err != nil {
		form.Error = "Не удалось обработать форму"
		h.render.Render(w, http.StatusOK, "login.html", form)
		return
	}

	form.Username = r.FormValue("username")
	form.Next = r.FormValue("next")

	user, err := h.users.Authenticate(r.Context(), form.Username, r.FormValue("password"))
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			form.Error = "Неверное имя пользователя или пароль"
			h.render.Render(w, http.StatusOK, "login.html", form)
			return
		}
		h.serverError(w, err, "web login")
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		h.serverError(w, err, "web login session")
		return
	}

	http.Redirect(w, r, safeNext(form.Next), http.StatusFound)
}

// Signup renders and processes registration, signing the new user in on
// success.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	form := signupFormData{
		basePage: h.base(w, r, "Зарегистрироваться"),
		Errors:   map[string]string{},
	}

	if r.Method == http.MethodGet {
		h.render.Render(w, http.StatusOK, "signup.html", form)
		return
	}

	if err := r.ParseForm(); err != nil {
		form.Errors["username"] = "Не удалось обработать форму"
		h.render.Render(w, http.StatusOK, "signup.html", form)
		return
	}

	form.Username = r.FormValue("username")
	form.Email = r.FormValue("email")
	form.FirstName = r.FormValue("first_name")
	form.LastName = r.FormValue("last_name")

	user, err := h.users.Register(r.Context(), &model.RegisterRequest{
		Username:  form.Username,
		Email:     form.Email,
		Password:  r.FormValue("password"),
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameExists):
			form.Errors["username"] = "Это имя пользователя уже занято"
		case errors.Is(err, model.ErrEmailExists):
			form.Errors["email"] = "Этот email уже зарегистрирован"
		default:
			form.Errors["password"] = err.Error()
		}
		h.render.Render(w, http.StatusOK, "signup.html", form)
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		h.serverError(w, err, "web signup session")
		return
	}

	h.sessions.AddFlash(w, r, "Добро пожаловать в Yatube!")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout drops the session and returns to the main page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		h.serverError(w, err, "web logout")
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
