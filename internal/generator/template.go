package generator

const dashboardHTML = `<!DOCTYPE html>
<html lang="vi">
<head>
   <meta charset="UTF-8"/>
   <meta name="viewport" content="width=device-width, initial-scale=1"/>
   <title>Dự báo nguy cơ cháy rừng</title>
   <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
   <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
   <style>
      :root {
         --bg-color: #121212;
         --text-color: #e0e0e0;
         --card-bg: #1e1e1e;
         --card-border: #333;
         --summary-bg: #252525;
         --header-bg: #2d2d45;
         --header-border: #444466;
         --tab-active-bg: #3d3d5c;
         --danger: #dc2626;
         --safe: #16a34a;
         --warn: #f59e0b;
         --info: #2563eb;
      }
      body {
         font-family: Arial, sans-serif;
         max-width: 1200px;
         margin: 0 auto;
         padding: 20px;
         background-color: var(--bg-color);
         color: var(--text-color);
         animation: fadeIn 0.3s ease-in;
      }
      @keyframes fadeIn { from { opacity: 0; } to { opacity: 1; } }
      html { background-color: #121212; }
      h1, h2, h3, h4 { color: var(--text-color); }
      .tabs { display: flex; gap: 6px; margin-bottom: 15px; }
      .tab-btn {
         background-color: var(--header-bg); color: var(--text-color);
         padding: 8px 14px; border-radius: 4px; border: 1px solid var(--header-border);
         cursor: pointer; text-decoration: none;
      }
      .tab-btn.active { background-color: var(--tab-active-bg); }
      .tab-content { display: none; }
      .tab-content.active { display: block; }
      .card {
         border: 1px solid var(--card-border); padding: 15px;
         border-radius: 5px; background-color: var(--card-bg); margin-bottom: 15px;
      }
      .form-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 10px; }
      .form-grid label { display: block; font-size: 0.85em; color: #aaa; margin-bottom: 3px; }
      .form-grid input, .form-grid select {
         width: 100%; box-sizing: border-box; padding: 6px;
         background-color: var(--summary-bg); color: var(--text-color);
         border: 1px solid var(--card-border); border-radius: 3px;
      }
      button {
         margin-top: 10px; padding: 8px 14px; background-color: var(--header-bg);
         color: var(--text-color); border: 1px solid var(--header-border); border-radius: 3px; cursor: pointer;
      }
      button:disabled { opacity: 0.5; cursor: not-allowed; }
      .result.danger { border-color: var(--danger); }
      .result.safe { border-color: var(--safe); }
      .verdict { font-size: 1.4em; font-weight: bold; }
      .risk-bar { height: 14px; background-color: var(--summary-bg); border-radius: 7px; overflow: hidden; margin: 10px 0; }
      .risk-fill { height: 100%; transition: width 0.4s ease-in-out; }
      .risk-fill.high { background-color: var(--danger); }
      .risk-fill.medium { background-color: var(--warn); }
      .risk-fill.low { background-color: var(--safe); }
      .history-table, .stats-table { width: 100%; border-collapse: collapse; }
      .history-table td, .history-table th, .stats-table td, .stats-table th {
         border-bottom: 1px solid var(--card-border); padding: 5px; text-align: left;
      }
      .history-table tr.danger td:first-child { border-left: 3px solid var(--danger); }
      .history-table tr.safe td:first-child { border-left: 3px solid var(--safe); }
      #map {
         height: 600px; width: 100%;
         border: 2px solid var(--card-border);
         border-radius: 5px; margin-top: 10px;
         opacity: 1; transition: opacity 0.2s ease-in-out;
      }
      #map.loading { opacity: 0.7; }
      .map-toolbar { display: flex; align-items: center; gap: 10px; }
      .map-toolbar select { padding: 6px; background-color: var(--summary-bg); color: var(--text-color); border: 1px solid var(--card-border); }
      .popup h4 { margin: 0 0 6px 0; color: #111; }
      .popup .risk { font-weight: bold; }
      .popup small { color: #555; }
      .summary { display: flex; flex-wrap: wrap; gap: 15px; }
      .summary .card { flex: 1; min-width: 200px; text-align: center; }
      .summary .value { font-size: 1.8em; font-weight: bold; }
      .chart svg { width: 100%; height: auto; background-color: #fff; border-radius: 5px; }
      #notice {
         position: fixed; top: 20px; right: 20px; min-width: 260px;
         padding: 10px 15px; border-radius: 5px; display: none; z-index: 2000;
         border: 1px solid var(--header-border); background-color: var(--header-bg);
      }
      #notice.info { display: block; border-color: var(--info); }
      #notice.success { display: block; border-color: var(--safe); }
      #notice.error { display: block; border-color: var(--danger); }
      .last-updated { font-size: 0.8em; margin-top: 10px; color: #888; }
      @media (max-width: 768px) { .form-grid { grid-template-columns: 1fr; } }
   </style>
</head>
<body>
   <h1 style="text-align: center;">🔥 Dự báo nguy cơ cháy rừng</h1>

   <div id="notice"{{ with .Notice }} class="{{ .Level }}"{{ end }}>{{ with .Notice }}{{ .Message }}{{ end }}</div>

   <div class="tabs">
      <a class="tab-btn{{ if eq .ActiveTab "predict" }} active{{ end }}" href="?tab=predict" data-tab="predict">Dự báo</a>
      <a class="tab-btn{{ if eq .ActiveTab "map" }} active{{ end }}" href="?tab=map" data-tab="map">Bản đồ</a>
      <a class="tab-btn{{ if eq .ActiveTab "analytics" }} active{{ end }}" href="?tab=analytics" data-tab="analytics">Thống kê</a>
   </div>

   <div id="tab-predict" class="tab-content{{ if eq .ActiveTab "predict" }} active{{ end }}">
      {{ if .Interactive }}
      <form class="card" method="post" action="/predict" id="predict-form">
         <div class="form-grid">
            <div>
               <label for="province">Tỉnh</label>
               <select id="province" name="province">
                  {{ range .Provinces }}<option value="{{ . }}"{{ if eq . $.Province }} selected{{ end }}>{{ . }}</option>{{ end }}
               </select>
            </div>
            {{ range .Fields }}
            <div>
               <label for="{{ .Name }}">{{ .Label }}</label>
               <input type="number" id="{{ .Name }}" name="{{ .Name }}" step="{{ .Step }}" value="{{ .Value }}" required/>
            </div>
            {{ end }}
         </div>
         <button type="submit" id="predict-btn" data-loading="{{ message "predictLoading" }}">🔍 Phân tích</button>
         <button type="submit" formaction="/predict/random" formnovalidate id="random-btn">🎲 Dữ liệu ngẫu nhiên</button>
      </form>
      {{ end }}

      {{ with .Result }}
      <div class="card result {{ .State }}" id="result">
         <div class="verdict" style="color: {{ .Color }};">
            {{ if eq .State "danger" }}🔥 CÓ NGUY CƠ CHÁY{{ else }}✅ AN TOÀN{{ end }}
         </div>
         <p>Mức độ: <strong>{{ .RiskLevel }}</strong> · Xác suất: <strong>{{ .Percent }}</strong></p>
         <div class="risk-bar"><div class="risk-fill {{ .Tier }}" style="width: {{ .BarWidth }};"></div></div>
         <p>{{ .Recommendation }}</p>
         {{ with .Message }}<p><small>{{ . }}</small></p>{{ end }}
         <small>{{ .Timestamp }}</small>
      </div>
      {{ end }}

      {{ if .History }}
      <div class="card">
         <h3>Dự báo gần đây</h3>
         <table class="history-table">
            <tr><th>Tỉnh</th><th>Xác suất</th><th>Mức độ</th><th>Thời gian</th></tr>
            {{ range .History }}
            <tr class="{{ .State }}"><td>{{ .Province }}</td><td>{{ .Percent }}</td><td>{{ .Tier }}</td><td>{{ .When }}</td></tr>
            {{ end }}
         </table>
      </div>
      {{ end }}
   </div>

   <div id="tab-map" class="tab-content{{ if eq .ActiveTab "map" }} active{{ end }}">
      <div class="map-toolbar">
         <label for="days">Khoảng thời gian</label>
         <select id="days">
            {{ range dayOptions }}<option value="{{ . }}"{{ if eq . $.Days }} selected{{ end }}>{{ . }} ngày</option>{{ end }}
         </select>
         {{ if .Interactive }}<button id="refresh-btn">🔄 Tải lại</button>{{ end }}
         <span>Điểm nóng: <strong id="hotspot-count">{{ .Layer.CountLabel }}</strong></span>
      </div>
      <div id="map" data-failed="{{ message "mapFailed" }}"></div>
   </div>

   <div id="tab-analytics" class="tab-content{{ if eq .ActiveTab "analytics" }} active{{ end }}">
      {{ with .Analytics }}
      <div class="summary">
         <div class="card"><div>Tổng số vụ cháy</div><div class="value" id="total-fires">{{ .TotalFires }}</div></div>
         <div class="card"><div>Số tỉnh</div><div class="value" id="province-count">{{ .ProvinceCount }}</div></div>
         <div class="card"><div>Tháng cao điểm</div><div class="value" id="peak-month">{{ if .PeakMonth }}{{ .PeakMonth }}{{ else }}-{{ end }}</div></div>
      </div>
      {{ if $.ProvinceChart }}<div class="card chart"><h3>Điểm nóng theo tỉnh</h3>{{ $.ProvinceChart }}</div>{{ end }}
      {{ if $.MonthlyChart }}<div class="card chart"><h3>Xu hướng theo tháng</h3>{{ $.MonthlyChart }}</div>{{ end }}
      {{ else }}
      <p>Chưa có dữ liệu thống kê.</p>
      {{ end }}
   </div>

   <div class="last-updated">Cập nhật lúc: {{ .LastUpdated }}</div>

   <script>
      const interactive = {{ .Interactive }};
      let layerData = {{ toJSON .Layer }};
      let layerLoaded = {{ .LayerLoaded }};
      const analyticsLoaded = {{ if .Analytics }}true{{ else }}false{{ end }};
      const hotspotsFailed = {{ message "hotspotsFailed" }};
      const popupNetwork = {{ message "popupNetwork" }};
      let map;
      let hotspotLayer;
      let mapReady = false;

      function showNotice(n) {
         if (!n) return;
         const el = document.getElementById('notice');
         el.className = n.level;
         el.textContent = n.message;
         clearTimeout(showNotice.timer);
         showNotice.timer = setTimeout(() => { el.className = ''; }, 4000);
      }

      function initMap() {
         if (mapReady) return;
         const el = document.getElementById('map');
         try {
            map = L.map('map').setView({{ mapCenter }});
            L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
               attribution: '&copy; OpenStreetMap contributors'
            }).addTo(map);
            hotspotLayer = L.layerGroup().addTo(map);
         } catch (e) {
            showNotice({ level: 'error', message: el.dataset.failed });
            return;
         }
         if (interactive) {
            map.on('click', e => predictClick(e.latlng));
         }
         mapReady = true;
         drawLayer(layerData);
         if (interactive && !layerLoaded) {
            refreshHotspots();
         }
      }

      function drawLayer(layer) {
         hotspotLayer.clearLayers();
         (layer.markers || []).forEach(m => {
            const marker = L.circleMarker([m.lat, m.lon], {
               radius: 6, color: '#dc2626', fillColor: '#f97316', fillOpacity: 0.8, weight: 1
            }).bindTooltip(m.tooltip);
            if (interactive) {
               marker.on('click', ev => {
                  L.DomEvent.stopPropagation(ev);
                  predictHotspot(marker, m.hotspot);
               });
            }
            marker.addTo(hotspotLayer);
         });
         document.getElementById('hotspot-count').textContent = layer.count_label;
      }

      function esc(v) {
         const d = document.createElement('div');
         d.textContent = v == null ? '' : String(v);
         return d.innerHTML;
      }

      function popupHTML(p) {
         if (p.error) return '<div class="popup">' + esc(p.error) + '</div>';
         let h = '<div class="popup"><h4>' + p.icon + ' ' + esc(p.title) + '</h4>';
         h += '<div class="risk" style="color:' + esc(p.color) + '">' + esc(p.risk_level) + ' · ' + esc(p.percent) + '</div>';
         h += '<div>📍 ' + esc(p.province) + (p.date ? ' · ' + esc(p.date) : '') + '</div>';
         if (p.outside) h += '<div><small>⚠️ Ngoài vùng phủ dữ liệu</small></div>';
         if (p.satellite) {
            h += '<div>🛰️ FRP: ' + esc(p.satellite.frp) + ' · Độ sáng: ' + esc(p.satellite.brightness) + ' · ' + esc(p.satellite.time) + '</div>';
         }
         if (p.weather) {
            const w = p.weather;
            h += '<div>🌡️ ' + w.temperature + ' · 💧 ' + w.humidity;
            if (w.wind) h += ' · 💨 ' + w.wind;
            h += '</div><div>🌧️ ' + w.rain_today + ' · 7 ngày: ' + w.rain_7d;
            if (w.solar) h += ' · ☀️ ' + w.solar;
            h += '</div>';
         }
         if (p.nearest) h += '<div>🔥 Gần nhất: ' + esc(p.nearest.province) + ' (' + esc(p.nearest.distance) + ')</div>';
         if (p.footer) h += '<div><small>' + esc(p.footer) + '</small></div>';
         return h + '</div>';
      }

      async function postJSON(url, body) {
         const resp = await fetch(url, {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify(body)
         });
         return resp.json();
      }

      async function predictHotspot(marker, h) {
         marker.bindPopup('⏳ Đang phân tích...').openPopup();
         try {
            const p = await postJSON('/map/hotspot', h);
            marker.setPopupContent(popupHTML(p));
         } catch (e) {
            marker.setPopupContent('<div class="popup">' + esc(popupNetwork) + '</div>');
         }
      }

      async function predictClick(latlng) {
         const popup = L.popup().setLatLng(latlng).setContent('⏳ Đang phân tích...').openOn(map);
         try {
            const p = await postJSON('/map/click', { lat: latlng.lat, lon: latlng.lng });
            popup.setContent(popupHTML(p));
         } catch (e) {
            popup.setContent('<div class="popup">' + esc(popupNetwork) + '</div>');
         }
      }

      async function refreshHotspots() {
         const btn = document.getElementById('refresh-btn');
         const days = document.getElementById('days').value;
         btn.disabled = true;
         document.getElementById('map').classList.add('loading');
         try {
            const resp = await fetch('/map/hotspots?days=' + encodeURIComponent(days));
            const body = await resp.json();
            if (body.layer) {
               layerData = body.layer;
               layerLoaded = true;
               drawLayer(layerData);
            }
            showNotice(body.notice);
         } catch (e) {
            showNotice({ level: 'error', message: hotspotsFailed });
         } finally {
            btn.disabled = false;
            document.getElementById('map').classList.remove('loading');
         }
      }

      document.addEventListener('DOMContentLoaded', () => {
         const notice = document.getElementById('notice');
         if (notice.className) {
            setTimeout(() => { notice.className = ''; }, 4000);
         }
         if (document.getElementById('tab-map').classList.contains('active')) {
            initMap();
         }
         document.querySelectorAll('.tab-btn').forEach(btn => {
            btn.addEventListener('click', ev => {
               if (btn.dataset.tab === 'analytics' && interactive && !analyticsLoaded) {
                  return;
               }
               ev.preventDefault();
               document.querySelectorAll('.tab-btn').forEach(b => b.classList.remove('active'));
               document.querySelectorAll('.tab-content').forEach(c => c.classList.remove('active'));
               btn.classList.add('active');
               document.getElementById('tab-' + btn.dataset.tab).classList.add('active');
               if (btn.dataset.tab === 'map') {
                  initMap();
                  setTimeout(() => map.invalidateSize(), 100);
               }
            });
         });
         const form = document.getElementById('predict-form');
         if (form) {
            const btn = document.getElementById('predict-btn');
            form.addEventListener('submit', ev => {
               if (btn.disabled) {
                  ev.preventDefault();
                  return;
               }
               if (ev.submitter === btn) {
                  btn.disabled = true;
                  showNotice({ level: 'info', message: btn.dataset.loading });
               }
            });
            window.addEventListener('pageshow', () => { btn.disabled = false; });
         }
         const refresh = document.getElementById('refresh-btn');
         if (refresh) {
            refresh.addEventListener('click', refreshHotspots);
            document.getElementById('days').addEventListener('change', refreshHotspots);
         }
      });
   </script>
</body>
</html>
`
